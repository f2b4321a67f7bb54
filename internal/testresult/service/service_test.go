package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Authorizer,AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"perf-service/internal/testresult/models"
	"perf-service/internal/testresult/service/mocks"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/sentinel"
	"perf-service/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *mocks.MockStore
	authz     *mocks.MockAuthorizer
	service   *Service
	coachID   uuid.UUID
	athleteID uuid.UUID
	now       time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.store = mocks.NewMockStore(ctrl)
	s.authz = mocks.NewMockAuthorizer(ctrl)
	s.coachID = uuid.New()
	s.athleteID = uuid.New()
	s.now = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithPrincipal(context.Background(), s.coachID, "coach@example.com", requestcontext.RoleCoach)
	s.ctx = requestcontext.WithTime(s.ctx, s.now)
	s.service = New(s.store, s.authz,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func (s *ServiceSuite) validRequest() RegisterRequest {
	score := 8.5
	return RegisterRequest{
		AthleteID: s.athleteID,
		Results: []ResultRequest{
			{TestID: uuid.New(), Value: "120", NormalizedScore: &score},
			{TestID: uuid.New(), Value: "45"},
		},
	}
}

func (s *ServiceSuite) TestRegister() {
	s.Run("writes the batch once and returns the count", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)
		var saved []*models.TestResult
		s.store.EXPECT().SaveAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, results []*models.TestResult) error {
				saved = results
				return nil
			})

		count, err := s.service.Register(s.ctx, s.coachID, s.validRequest())
		s.Require().NoError(err)
		s.Equal(2, count)
		s.Require().Len(saved, 2)
		s.Equal(s.athleteID, saved[0].AthleteID)
		s.Equal(s.now, saved[0].TestDate)
	})

	s.Run("authorization happens before validation", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).
			Return(dErrors.New(dErrors.CodeForbidden, "athlete does not belong to this coach"))

		_, err := s.service.Register(s.ctx, s.coachID, RegisterRequest{AthleteID: s.athleteID})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("empty result set is a validation error", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)

		_, err := s.service.Register(s.ctx, s.coachID, RegisterRequest{AthleteID: s.athleteID})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("identity outage propagates unavailable", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).
			Return(dErrors.New(dErrors.CodeUnavailable, "could not determine relationship"))

		_, err := s.service.Register(s.ctx, s.coachID, s.validRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("a bad result aborts the whole batch before the store", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)

		req := s.validRequest()
		req.Results[1].Value = ""
		_, err := s.service.Register(s.ctx, s.coachID, req)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("store failure surfaces as internal", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)
		s.store.EXPECT().SaveAll(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := s.service.Register(s.ctx, s.coachID, s.validRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("unknown test id maps to validation", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)
		s.store.EXPECT().SaveAll(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("test catalog: %w", sentinel.ErrNotFound))

		_, err := s.service.Register(s.ctx, s.coachID, s.validRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestHistory() {
	s.Run("returns the enriched rows", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)
		s.store.EXPECT().FindByAthleteID(gomock.Any(), s.athleteID).Return([]models.Enriched{
			{TestResult: models.TestResult{ID: uuid.New(), AthleteID: s.athleteID, ResultValue: "120"}, TestName: "Plank Hold", TestUnit: "seconds"},
		}, nil)

		results, err := s.service.History(s.ctx, s.coachID, requestcontext.RoleCoach, s.athleteID)
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		s.Equal("Plank Hold", results[0].TestName)
	})

	s.Run("denial propagates forbidden", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).
			Return(dErrors.New(dErrors.CodeForbidden, "athletes may only view their own records"))

		_, err := s.service.History(s.ctx, uuid.New(), requestcontext.RoleAthlete, s.athleteID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("empty history is an empty slice", func() {
		s.authz.EXPECT().Authorize(gomock.Any(), gomock.Any(), gomock.Any(), s.athleteID).Return(nil)
		s.store.EXPECT().FindByAthleteID(gomock.Any(), s.athleteID).Return(nil, nil)

		results, err := s.service.History(s.ctx, s.coachID, requestcontext.RoleCoach, s.athleteID)
		s.Require().NoError(err)
		s.Empty(results)
	})
}

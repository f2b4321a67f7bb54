package handler

//go:generate mockgen -source=handler.go -destination=mocks/combat-mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"perf-service/internal/combat/handler/mocks"
	"perf-service/internal/combat/models"
	"perf-service/internal/combat/service"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

type CombatHandlerSuite struct {
	suite.Suite
	athleteID uuid.UUID
}

func TestCombatHandlerSuite(t *testing.T) {
	suite.Run(t, new(CombatHandlerSuite))
}

func (s *CombatHandlerSuite) SetupTest() {
	s.athleteID = uuid.New()
}

func (s *CombatHandlerSuite) newHandler() (*Handler, *mocks.MockService) {
	ctrl := gomock.NewController(s.T())
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mockService, logger, nil, nil), mockService
}

func (s *CombatHandlerSuite) authed(req *http.Request, userID uuid.UUID, role string) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), userID, "user@example.com", role))
}

func (s *CombatHandlerSuite) TestHandleRegister() {
	s.Run("returns 201 with the event id", func() {
		handler, mockService := s.newHandler()
		eventID := uuid.New()
		mockService.EXPECT().Register(gomock.Any(), s.athleteID, requestcontext.RoleAthlete, gomock.Any()).
			Return(eventID, nil)

		body, _ := json.Marshal(service.RegisterRequest{
			AthleteID: s.athleteID,
			EventType: "Sparring",
			Date:      time.Now().Add(-time.Hour),
		})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/combat-events", bytes.NewReader(body)), s.athleteID, requestcontext.RoleAthlete)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusCreated, w.Code)
		var resp map[string]string
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(eventID.String(), resp["id"])
	})

	s.Run("forbidden role maps to 403", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, dErrors.New(dErrors.CodeForbidden, "role not permitted for this operation"))

		body, _ := json.Marshal(service.RegisterRequest{AthleteID: s.athleteID, EventType: "Sparring"})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/combat-events", bytes.NewReader(body)), uuid.New(), "ADMIN")
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("malformed body is a 400", func() {
		handler, _ := s.newHandler()
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/combat-events", bytes.NewBufferString("{")), s.athleteID, requestcontext.RoleAthlete)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *CombatHandlerSuite) TestHandleMyHistory() {
	handler, mockService := s.newHandler()
	mockService.EXPECT().History(gomock.Any(), s.athleteID).Return([]models.Event{
		{ID: uuid.New(), AthleteID: s.athleteID, EventType: "Sparring"},
	}, nil)

	req := s.authed(httptest.NewRequest(http.MethodGet, "/v1/combat-events/me", nil), s.athleteID, requestcontext.RoleAthlete)
	w := httptest.NewRecorder()
	handler.handleMyHistory(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp []models.Event
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal("Sparring", resp[0].EventType)
}

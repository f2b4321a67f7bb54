package handler

//go:generate mockgen -source=handler.go -destination=mocks/attendance-mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"perf-service/internal/attendance/handler/mocks"
	"perf-service/internal/attendance/service"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

type AttendanceHandlerSuite struct {
	suite.Suite
	coachID   uuid.UUID
	athleteID uuid.UUID
}

func TestAttendanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(AttendanceHandlerSuite))
}

func (s *AttendanceHandlerSuite) SetupTest() {
	s.coachID = uuid.New()
	s.athleteID = uuid.New()
}

func (s *AttendanceHandlerSuite) newHandler() (*Handler, *mocks.MockService) {
	ctrl := gomock.NewController(s.T())
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mockService, logger, nil, nil), mockService
}

func (s *AttendanceHandlerSuite) authed(req *http.Request, userID uuid.UUID, role string) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), userID, "user@example.com", role))
}

func (s *AttendanceHandlerSuite) withRouteParam(req *http.Request, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("athleteID", value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func (s *AttendanceHandlerSuite) TestHandleRegister() {
	date := time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)

	s.Run("returns 201 with the message and count", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), s.coachID, gomock.Any()).Return(2, nil)

		body, _ := json.Marshal(service.RegisterRequest{
			Date:       date,
			AthleteIDs: []uuid.UUID{uuid.New(), uuid.New()},
		})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewReader(body)), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusCreated, w.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(float64(2), resp["count"])
		s.Equal("attendance registered for 2 athlete(s) on 2026-07-25", resp["message"])
	})

	s.Run("count reflects skipped duplicates", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), s.coachID, gomock.Any()).Return(1, nil)

		body, _ := json.Marshal(service.RegisterRequest{
			Date:       date,
			AthleteIDs: []uuid.UUID{uuid.New(), uuid.New()},
		})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewReader(body)), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusCreated, w.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(float64(1), resp["count"])
	})

	s.Run("batch with an outsider maps to 403", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), s.coachID, gomock.Any()).
			Return(0, dErrors.New(dErrors.CodeForbidden, "one or more athletes do not belong to this coach"))

		body, _ := json.Marshal(service.RegisterRequest{Date: date, AthleteIDs: []uuid.UUID{uuid.New()}})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewReader(body)), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("empty batch maps to 422", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), s.coachID, gomock.Any()).
			Return(0, dErrors.New(dErrors.CodeValidation, "at least one athlete is required"))

		body, _ := json.Marshal(service.RegisterRequest{Date: date})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewReader(body)), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("identity outage maps to 502", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().Register(gomock.Any(), s.coachID, gomock.Any()).
			Return(0, dErrors.New(dErrors.CodeUnavailable, "could not determine membership"))

		body, _ := json.Marshal(service.RegisterRequest{Date: date, AthleteIDs: []uuid.UUID{uuid.New()}})
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewReader(body)), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusBadGateway, w.Code)
	})

	s.Run("malformed body is a 400", func() {
		handler, _ := s.newHandler()
		req := s.authed(httptest.NewRequest(http.MethodPost, "/v1/attendance", bytes.NewBufferString("{")), s.coachID, requestcontext.RoleCoach)
		w := httptest.NewRecorder()
		handler.handleRegister(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *AttendanceHandlerSuite) TestHandleHistory() {
	s.Run("passes the requester's role through", func() {
		handler, mockService := s.newHandler()
		mockService.EXPECT().History(gomock.Any(), s.athleteID, requestcontext.RoleAthlete, s.athleteID).Return(nil, nil)

		req := s.authed(httptest.NewRequest(http.MethodGet, "/v1/attendance/athlete/"+s.athleteID.String(), nil), s.athleteID, requestcontext.RoleAthlete)
		req = s.withRouteParam(req, s.athleteID.String())
		w := httptest.NewRecorder()
		handler.handleHistory(w, req)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("non-uuid athlete id is a 400", func() {
		handler, _ := s.newHandler()
		req := s.authed(httptest.NewRequest(http.MethodGet, "/v1/attendance/athlete/nope", nil), s.coachID, requestcontext.RoleCoach)
		req = s.withRouteParam(req, "nope")
		w := httptest.NewRecorder()
		handler.handleHistory(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

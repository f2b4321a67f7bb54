// Package handler exposes the attendance endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"perf-service/internal/attendance/models"
	"perf-service/internal/attendance/service"
	"perf-service/internal/platform/metrics"
	"perf-service/internal/platform/middleware"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/httputil"
)

// Service defines the attendance operations the handler needs.
type Service interface {
	Register(ctx context.Context, coachID uuid.UUID, req service.RegisterRequest) (int, error)
	History(ctx context.Context, requesterID uuid.UUID, role string, athleteID uuid.UUID) ([]*models.Record, error)
}

// Handler handles attendance endpoints.
type Handler struct {
	attendance   Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(attendance Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		attendance:   attendance,
		logger:       logger,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the attendance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	attendanceRouter := chi.NewRouter()
	attendanceRouter.Use(middleware.Recovery(h.logger))
	attendanceRouter.Use(middleware.RequestID)
	attendanceRouter.Use(middleware.Logger(h.logger))
	attendanceRouter.Use(middleware.Timeout(30 * time.Second))
	attendanceRouter.Use(middleware.ContentTypeJSON)
	attendanceRouter.Use(middleware.LatencyMiddleware(h.metrics))
	attendanceRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	attendanceRouter.Post("/", h.handleRegister)
	attendanceRouter.Get("/athlete/{athleteID}", h.handleHistory)

	r.Mount("/v1/attendance", attendanceRouter)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid attendance request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	count, err := h.attendance.Register(ctx, middleware.GetUserID(ctx), req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register attendance", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": service.RegisterMessage(count, req.Date),
		"count":   count,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "athlete id must be a valid uuid"))
		return
	}

	records, err := h.attendance.History(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), athleteID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load attendance history", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	switch {
	case dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeInvariantViolation),
		dErrors.HasCode(err, dErrors.CodeBadRequest),
		dErrors.HasCode(err, dErrors.CodeForbidden):
		h.logger.WarnContext(ctx, msg, attrs...)
	default:
		h.logger.ErrorContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

// Package handler exposes the session endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"perf-service/internal/platform/metrics"
	"perf-service/internal/platform/middleware"
	"perf-service/internal/session/service"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/httputil"
)

// Service defines the session operations the handler needs.
type Service interface {
	Register(ctx context.Context, req service.RegisterRequest) (uuid.UUID, error)
	RegisterTraining(ctx context.Context, athleteID uuid.UUID, req service.TrainingRequest) (service.TrainingResult, error)
	MyHistory(ctx context.Context, athleteID uuid.UUID) ([]service.Summary, error)
	AthleteHistory(ctx context.Context, requesterID, athleteID uuid.UUID) ([]service.Summary, error)
}

// Handler handles session endpoints.
type Handler struct {
	sessions     Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(sessions Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		sessions:     sessions,
		logger:       logger,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sessionRouter := chi.NewRouter()
	sessionRouter.Use(middleware.Recovery(h.logger))
	sessionRouter.Use(middleware.RequestID)
	sessionRouter.Use(middleware.Logger(h.logger))
	sessionRouter.Use(middleware.Timeout(30 * time.Second))
	sessionRouter.Use(middleware.ContentTypeJSON)
	sessionRouter.Use(middleware.LatencyMiddleware(h.metrics))
	sessionRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	sessionRouter.Post("/", h.handleRegister)
	sessionRouter.Post("/training", h.handleRegisterTraining)
	sessionRouter.Get("/me", h.handleMyHistory)
	sessionRouter.Get("/athlete/{athleteID}", h.handleAthleteHistory)

	r.Mount("/v1/sessions", sessionRouter)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid session registration request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := h.sessions.Register(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register session", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleRegisterTraining(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	athleteID := middleware.GetUserID(ctx)

	var req service.TrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid training registration request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.sessions.RegisterTraining(ctx, athleteID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register training session", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries, err := h.sessions.MyHistory(ctx, middleware.GetUserID(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load session history", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleAthleteHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "athlete id must be a valid uuid"))
		return
	}

	summaries, err := h.sessions.AthleteHistory(ctx, middleware.GetUserID(ctx), athleteID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load athlete history", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// writeServiceError logs the failure and maps the domain error onto the
// response. Client-caused errors log at warn, the rest at error.
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

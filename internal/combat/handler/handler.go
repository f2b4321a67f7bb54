// Package handler exposes the combat event endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"perf-service/internal/combat/models"
	"perf-service/internal/combat/service"
	"perf-service/internal/platform/metrics"
	"perf-service/internal/platform/middleware"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/httputil"
)

// Service defines the combat event operations the handler needs.
type Service interface {
	Register(ctx context.Context, requesterID uuid.UUID, role string, req service.RegisterRequest) (uuid.UUID, error)
	History(ctx context.Context, athleteID uuid.UUID) ([]models.Event, error)
}

// Handler handles combat event endpoints.
type Handler struct {
	events       Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(events Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		events:       events,
		logger:       logger,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the combat event routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	combatRouter := chi.NewRouter()
	combatRouter.Use(middleware.Recovery(h.logger))
	combatRouter.Use(middleware.RequestID)
	combatRouter.Use(middleware.Logger(h.logger))
	combatRouter.Use(middleware.Timeout(30 * time.Second))
	combatRouter.Use(middleware.ContentTypeJSON)
	combatRouter.Use(middleware.LatencyMiddleware(h.metrics))
	combatRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	combatRouter.Post("/", h.handleRegister)
	combatRouter.Get("/me", h.handleMyHistory)

	r.Mount("/v1/combat-events", combatRouter)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid combat event request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := h.events.Register(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register combat event", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.events.History(ctx, middleware.GetUserID(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load combat event history", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, events)
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

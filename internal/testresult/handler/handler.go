// Package handler exposes the test-result endpoints.
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
	"perf-service/internal/testresult/models"
	"perf-service/internal/testresult/service"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/httputil"
)

// Service defines the test-result operations the handler needs.
type Service interface {
	Register(ctx context.Context, coachID uuid.UUID, req service.RegisterRequest) (int, error)
	History(ctx context.Context, requesterID uuid.UUID, role string, athleteID uuid.UUID) ([]models.Enriched, error)
}

// Handler handles test-result endpoints.
type Handler struct {
	results      Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(results Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		results:      results,
		logger:       logger,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the test-result routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	resultRouter := chi.NewRouter()
	resultRouter.Use(middleware.Recovery(h.logger))
	resultRouter.Use(middleware.RequestID)
	resultRouter.Use(middleware.Logger(h.logger))
	resultRouter.Use(middleware.Timeout(30 * time.Second))
	resultRouter.Use(middleware.ContentTypeJSON)
	resultRouter.Use(middleware.LatencyMiddleware(h.metrics))
	resultRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	resultRouter.Post("/", h.handleRegister)
	resultRouter.Get("/athlete/{athleteID}", h.handleHistory)

	r.Mount("/v1/test-results", resultRouter)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid test results request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	count, err := h.results.Register(ctx, middleware.GetUserID(ctx), req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register test results", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": service.RegisterMessage(count),
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

	results, err := h.results.History(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), athleteID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load test result history", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
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

// Package service orchestrates combat event registration and the athlete's
// own event history.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"perf-service/internal/audit"
	"perf-service/internal/authz"
	"perf-service/internal/combat/models"
	"perf-service/internal/platform/metrics"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

// Store persists combat events.
type Store interface {
	Save(ctx context.Context, event *models.Event) error
	FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Event, error)
}

// Authorizer evaluates an operation policy for a principal.
type Authorizer interface {
	Authorize(ctx context.Context, p authz.Principal, policy authz.Policy, athleteIDs ...uuid.UUID) error
}

// AuditPublisher records domain actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RegisterRequest is the combat event registration payload.
type RegisterRequest struct {
	AthleteID    uuid.UUID `json:"athlete_id"`
	EventType    string    `json:"event_type"`
	Date         time.Time `json:"date"`
	OpponentName *string   `json:"opponent_name,omitempty"`
	Result       *string   `json:"result,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.AthleteID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "athlete_id is required")
	}
	if r.EventType == "" {
		return dErrors.New(dErrors.CodeValidation, "event_type is required")
	}
	if r.Date.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date is required")
	}
	return nil
}

// Service implements combat event registration and history.
type Service struct {
	store   Store
	authz   Authorizer
	audit   AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(publisher AuditPublisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func New(store Store, authorizer Authorizer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		authz:  authorizer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register records a combat event. Athletes may record their own events and
// coaches those of their gym members; any other role is rejected outright.
func (s *Service) Register(ctx context.Context, requesterID uuid.UUID, role string, req RegisterRequest) (uuid.UUID, error) {
	principal := authz.Principal{ID: requesterID, Role: role}
	if err := s.authz.Authorize(ctx, principal, authz.RegisterCombatEvent, req.AthleteID); err != nil {
		return uuid.Nil, err
	}

	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	var result *models.Result
	if req.Result != nil {
		parsed, err := models.ParseResult(*req.Result)
		if err != nil {
			return uuid.Nil, err
		}
		result = &parsed
	}

	// The future-date check is anchored on the request-scoped clock set by
	// the middleware chain.
	event, err := models.NewEvent(req.AthleteID, req.EventType, req.Date, req.OpponentName, result, requestcontext.Now(ctx))
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.Save(ctx, event); err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save combat event")
	}

	if s.metrics != nil {
		s.metrics.CombatEventsRegistered.Inc()
	}
	s.emitAudit(ctx, audit.EventCombatEventRecorded, req.AthleteID)

	return event.ID, nil
}

// History returns the athlete's own combat events. The athlete id comes from
// the authenticated principal, so no policy evaluation is needed.
func (s *Service) History(ctx context.Context, athleteID uuid.UUID) ([]models.Event, error) {
	events, err := s.store.FindByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load combat event history")
	}
	return events, nil
}

func (s *Service) emitAudit(ctx context.Context, action string, athleteID uuid.UUID) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:     action,
		ActorID:    requestcontext.UserID(ctx),
		ActorEmail: requestcontext.Email(ctx),
		AthleteID:  athleteID,
		RequestID:  requestcontext.RequestID(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}

// Package service orchestrates batch attendance registration.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"perf-service/internal/attendance/models"
	"perf-service/internal/audit"
	"perf-service/internal/authz"
	"perf-service/internal/platform/metrics"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

// Store persists attendance records. SaveAll writes the batch with
// skip-on-conflict semantics and reports how many rows were actually
// written.
type Store interface {
	SaveAll(ctx context.Context, records []*models.Record) (int, error)
	FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]*models.Record, error)
}

// Authorizer evaluates an operation policy for a principal.
type Authorizer interface {
	Authorize(ctx context.Context, p authz.Principal, policy authz.Policy, athleteIDs ...uuid.UUID) error
}

// AuditPublisher records domain actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RegisterRequest marks a set of athletes present on one date.
type RegisterRequest struct {
	Date       time.Time   `json:"date"`
	AthleteIDs []uuid.UUID `json:"athlete_ids"`
}

func (r RegisterRequest) Validate() error {
	if r.Date.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date is required")
	}
	if len(r.AthleteIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one athlete is required")
	}
	for _, id := range r.AthleteIDs {
		if id == uuid.Nil {
			return dErrors.New(dErrors.CodeValidation, "athlete ids must be valid uuids")
		}
	}
	return nil
}

// Service implements attendance registration.
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

// Register marks the batch of athletes present on the request date. The
// empty batch is rejected before the membership check so the gateway's
// vacuous-truth answer can never be reached with no athletes. Already
// recorded athletes are skipped; the returned count covers only the rows
// actually written.
func (s *Service) Register(ctx context.Context, coachID uuid.UUID, req RegisterRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	principal := authz.Principal{ID: coachID, Role: requestcontext.Role(ctx)}
	if err := s.authz.Authorize(ctx, principal, authz.RegisterAttendance, req.AthleteIDs...); err != nil {
		return 0, err
	}

	records := make([]*models.Record, 0, len(req.AthleteIDs))
	for _, athleteID := range req.AthleteIDs {
		record, err := models.NewRecord(athleteID, req.Date, coachID)
		if err != nil {
			return 0, err
		}
		records = append(records, record)
	}

	written, err := s.store.SaveAll(ctx, records)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save attendance records")
	}

	if s.metrics != nil {
		s.metrics.AttendanceRecorded.Add(float64(written))
	}
	for _, record := range records {
		s.emitAudit(ctx, audit.EventAttendanceRecorded, record.AthleteID)
	}

	return written, nil
}

// History returns an athlete's attendance records. Athletes may read their
// own; coaches may read their athletes'.
func (s *Service) History(ctx context.Context, requesterID uuid.UUID, role string, athleteID uuid.UUID) ([]*models.Record, error) {
	principal := authz.Principal{ID: requesterID, Role: role}
	if err := s.authz.Authorize(ctx, principal, authz.QueryAttendanceHistory, athleteID); err != nil {
		return nil, err
	}

	records, err := s.store.FindByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attendance records")
	}
	return records, nil
}

// RegisterMessage is the confirmation text for a registered batch.
func RegisterMessage(count int, date time.Time) string {
	return fmt.Sprintf("attendance registered for %d athlete(s) on %s", count, date.Format("2006-01-02"))
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

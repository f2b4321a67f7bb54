// Package service orchestrates standardized-test result registration and the
// enriched history query.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"perf-service/internal/audit"
	"perf-service/internal/authz"
	"perf-service/internal/platform/metrics"
	"perf-service/internal/testresult/models"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/sentinel"
	"perf-service/pkg/requestcontext"
)

// Store persists test results and serves the catalog-joined read model.
type Store interface {
	SaveAll(ctx context.Context, results []*models.TestResult) error
	FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Enriched, error)
}

// Authorizer evaluates an operation policy for a principal.
type Authorizer interface {
	Authorize(ctx context.Context, p authz.Principal, policy authz.Policy, athleteIDs ...uuid.UUID) error
}

// AuditPublisher records domain actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ResultRequest is one test outcome in a registration batch.
type ResultRequest struct {
	TestID          uuid.UUID `json:"test_id"`
	Value           string    `json:"value"`
	NormalizedScore *float64  `json:"normalized_score,omitempty"`
}

// RegisterRequest is a batch of test outcomes for one athlete.
type RegisterRequest struct {
	AthleteID uuid.UUID       `json:"athlete_id"`
	Results   []ResultRequest `json:"results"`
}

func (r RegisterRequest) Validate() error {
	if r.AthleteID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "athlete_id is required")
	}
	if len(r.Results) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one test result is required")
	}
	return nil
}

// Service implements test-result registration and history.
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

// Register records a batch of test results for an athlete on behalf of their
// coach. The whole batch is written in one store call and the count of
// registered results is returned.
func (s *Service) Register(ctx context.Context, coachID uuid.UUID, req RegisterRequest) (int, error) {
	principal := authz.Principal{ID: coachID, Role: requestcontext.Role(ctx)}
	if err := s.authz.Authorize(ctx, principal, authz.RegisterTestResults, req.AthleteID); err != nil {
		return 0, err
	}

	if err := req.Validate(); err != nil {
		return 0, err
	}

	// Every result in the batch shares the request-scoped test date.
	now := requestcontext.Now(ctx)
	results := make([]*models.TestResult, 0, len(req.Results))
	for _, r := range req.Results {
		result, err := models.NewTestResult(req.AthleteID, r.TestID, r.Value, r.NormalizedScore, now)
		if err != nil {
			return 0, err
		}
		results = append(results, result)
	}

	if err := s.store.SaveAll(ctx, results); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.Wrap(err, dErrors.CodeValidation, "one or more test ids are unknown")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save test results")
	}

	if s.metrics != nil {
		s.metrics.TestResultsRegistered.Add(float64(len(results)))
	}
	s.emitAudit(ctx, audit.EventTestResultsRecorded, req.AthleteID)

	return len(results), nil
}

// RegisterMessage is the confirmation text for a registered batch.
func RegisterMessage(count int) string {
	return fmt.Sprintf("successfully registered %d test results", count)
}

// History returns the athlete's enriched results. Athletes may only view
// their own; every other role passes this check unrestricted.
func (s *Service) History(ctx context.Context, requesterID uuid.UUID, role string, athleteID uuid.UUID) ([]models.Enriched, error) {
	principal := authz.Principal{ID: requesterID, Role: role}
	if err := s.authz.Authorize(ctx, principal, authz.QueryTestResultHistory, athleteID); err != nil {
		return nil, err
	}

	results, err := s.store.FindByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load test result history")
	}
	return results, nil
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

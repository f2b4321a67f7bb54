// Package service orchestrates session registration and history queries. It
// owns the two entry modes (direct and structured), the effort-score
// derivation for structured workouts, and the history projection enriched
// with routine names.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"perf-service/internal/audit"
	"perf-service/internal/authz"
	"perf-service/internal/platform/metrics"
	"perf-service/internal/session/models"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/sentinel"
	"perf-service/pkg/requestcontext"
)

// Fallback labels for the history projection when enrichment cannot name the
// plan.
const (
	labelUnknownRoutine = "unknown routine"
	labelFreeTraining   = "free training"
)

// Store persists sessions together with their metrics.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Session, error)
}

// StreakProvider is the slice of the identity gateway used for the
// best-effort streak lookup after structured registration.
type StreakProvider interface {
	CurrentStreak(ctx context.Context, athleteID uuid.UUID) (int, error)
}

// RoutineResolver resolves routine assignment ids into display names.
// Implementations fail open with an empty map.
type RoutineResolver interface {
	ResolveRoutineNames(ctx context.Context, ids []string) map[string]string
}

// Authorizer evaluates an operation policy for a principal.
type Authorizer interface {
	Authorize(ctx context.Context, p authz.Principal, policy authz.Policy, athleteIDs ...uuid.UUID) error
}

// AuditPublisher records domain actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service implements session registration and history.
type Service struct {
	store    Store
	streaks  StreakProvider
	routines RoutineResolver
	authz    Authorizer
	audit    AuditPublisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
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

func New(store Store, streaks StreakProvider, routines RoutineResolver, authorizer Authorizer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		streaks:  streaks,
		routines: routines,
		authz:    authorizer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register handles direct registration: the caller supplies the complete
// session, score and metrics included. Session and metrics are persisted as
// one atomic unit.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error) {
	principal := authz.Principal{ID: requestcontext.UserID(ctx), Role: requestcontext.Role(ctx)}
	if err := s.authz.Authorize(ctx, principal, authz.RegisterSession); err != nil {
		return uuid.Nil, err
	}

	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	session, err := models.Start(req.AthleteID, req.RoutineAssignmentID, req.StartTime)
	if err != nil {
		return uuid.Nil, err
	}

	inputs := make([]models.MetricInput, 0, len(req.Metrics))
	for _, m := range req.Metrics {
		inputs = append(inputs, models.MetricInput{Type: m.Type, Value: m.Value, Unit: m.Unit})
	}
	if err := session.Finalize(req.EndTime, req.RPEScore, inputs); err != nil {
		return uuid.Nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return uuid.Nil, saveError(err, "failed to save session")
	}

	if s.metrics != nil {
		s.metrics.SessionsRegistered.Inc()
	}
	s.emitAudit(ctx, audit.EventSessionRegistered, req.AthleteID)

	return session.ID, nil
}

// TrainingResult is the outcome of a structured registration. Streak is nil
// when the identity authority could not report one.
type TrainingResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
	Streak  *int      `json:"streak,omitempty"`
}

// RegisterTraining handles structured registration for the authenticated
// athlete. Only athlete principals may use this mode; the policy check runs
// before any validation. The effort score is derived from the overall
// time-efficiency ratio and the sections are flattened into per-category
// metrics. The streak lookup afterwards is best effort: its failure never
// fails the registration.
func (s *Service) RegisterTraining(ctx context.Context, athleteID uuid.UUID, req TrainingRequest) (TrainingResult, error) {
	principal := authz.Principal{ID: athleteID, Role: requestcontext.Role(ctx)}
	if err := s.authz.Authorize(ctx, principal, authz.RegisterTrainingSession, athleteID); err != nil {
		return TrainingResult{}, err
	}

	if err := req.Validate(); err != nil {
		return TrainingResult{}, err
	}

	session, err := models.Start(athleteID, &req.AssignmentID, req.StartTime)
	if err != nil {
		return TrainingResult{}, err
	}

	rpe := deriveRPE(req.TotalDurationSeconds, req.TargetTimeSeconds)
	if err := session.Finalize(req.EndTime, &rpe, sectionMetrics(req.Sections)); err != nil {
		return TrainingResult{}, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return TrainingResult{}, saveError(err, "failed to save training session")
	}

	if s.metrics != nil {
		s.metrics.TrainingSessionsRegistered.Inc()
	}
	s.emitAudit(ctx, audit.EventTrainingSessionRegistered, athleteID)

	result := TrainingResult{ID: session.ID, Message: "session registered successfully"}
	if streak, err := s.streaks.CurrentStreak(ctx, athleteID); err != nil {
		s.logger.WarnContext(ctx, "streak lookup failed, continuing without it",
			"athlete_id", athleteID,
			"error", err,
		)
	} else {
		result.Streak = &streak
	}
	return result, nil
}

// saveError translates store sentinels into coded errors at the service
// boundary.
func saveError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

// deriveRPE maps the overall time-efficiency ratio onto a perceived-exertion
// score. Boundary ratios land in the lower bucket.
func deriveRPE(totalDurationSeconds, targetSeconds int) int {
	ratio := float64(totalDurationSeconds) / float64(targetSeconds)
	switch {
	case ratio <= 0.8:
		return 5
	case ratio <= 1.0:
		return 6
	case ratio <= 1.2:
		return 7
	case ratio <= 1.5:
		return 8
	default:
		return 9
	}
}

// sectionMetrics flattens workout sections into the persisted metric set:
// time, exercises and efficiency per category, plus a section count.
func sectionMetrics(sections []SectionRequest) []models.MetricInput {
	inputs := make([]models.MetricInput, 0, len(sections)*3+1)
	for _, section := range sections {
		efficiency := float64(section.TimeUsedSeconds) / float64(section.TargetTimeSeconds)
		inputs = append(inputs,
			models.MetricInput{
				Type:  fmt.Sprintf("time_%s", section.Category),
				Value: strconv.Itoa(section.TimeUsedSeconds),
				Unit:  "seconds",
			},
			models.MetricInput{
				Type:  fmt.Sprintf("exercises_%s", section.Category),
				Value: strconv.Itoa(section.ExercisesCompleted),
				Unit:  "exercises",
			},
			models.MetricInput{
				Type:  fmt.Sprintf("efficiency_%s", section.Category),
				Value: strconv.FormatFloat(efficiency, 'f', 2, 64),
				Unit:  "ratio",
			},
		)
	}
	inputs = append(inputs, models.MetricInput{
		Type:  "total_sections",
		Value: strconv.Itoa(len(sections)),
		Unit:  "sections",
	})
	return inputs
}

// Summary is the history projection of one session.
type Summary struct {
	ID              uuid.UUID `json:"id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	PlanName        string    `json:"plan_name"`
	RPE             *int      `json:"rpe,omitempty"`
}

// MyHistory returns the athlete's own session summaries, newest data as
// stored. The athlete id comes from the authenticated principal so no
// authorization check is needed here.
func (s *Service) MyHistory(ctx context.Context, athleteID uuid.UUID) ([]Summary, error) {
	return s.history(ctx, athleteID)
}

// AthleteHistory returns another athlete's summaries after the coach-of
// policy check.
func (s *Service) AthleteHistory(ctx context.Context, requesterID, athleteID uuid.UUID) ([]Summary, error) {
	principal := authz.Principal{ID: requesterID, Role: requestcontext.Role(ctx)}
	if err := s.authz.Authorize(ctx, principal, authz.QueryAthleteHistory, athleteID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			s.emitAudit(ctx, audit.EventHistoryAccessDenied, athleteID)
		}
		return nil, err
	}
	return s.history(ctx, athleteID)
}

func (s *Service) history(ctx context.Context, athleteID uuid.UUID) ([]Summary, error) {
	sessions, err := s.store.FindByAthleteID(ctx, athleteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session history")
	}

	routineIDs := make([]string, 0, len(sessions))
	for _, session := range sessions {
		if session.RoutineAssignmentID != nil {
			routineIDs = append(routineIDs, session.RoutineAssignmentID.String())
		}
	}
	names := s.routines.ResolveRoutineNames(ctx, routineIDs)

	summaries := make([]Summary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, Summary{
			ID:              session.ID,
			StartTime:       session.StartTime,
			DurationMinutes: durationMinutes(session),
			PlanName:        planName(session, names),
			RPE:             session.RPEScore,
		})
	}
	return summaries, nil
}

// durationMinutes rounds the session length to whole minutes; an unfinalized
// session has no length yet.
func durationMinutes(session models.Session) int {
	if session.EndTime == nil {
		return 0
	}
	return int(math.Round(session.EndTime.Sub(session.StartTime).Minutes()))
}

func planName(session models.Session, names map[string]string) string {
	if session.RoutineAssignmentID == nil {
		return labelFreeTraining
	}
	if name, ok := names[session.RoutineAssignmentID.String()]; ok && name != "" {
		return name
	}
	return labelUnknownRoutine
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

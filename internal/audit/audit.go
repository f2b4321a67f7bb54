// Package audit captures key domain actions for operational visibility.
// Events are emitted from services through a small publisher interface so
// sinks can change without touching business logic.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	Action     string
	ActorID    uuid.UUID
	ActorEmail string
	AthleteID  uuid.UUID
	RequestID  string
}

// Actions recorded by the performance service.
const (
	EventSessionRegistered         = "session_registered"
	EventTrainingSessionRegistered = "training_session_registered"
	EventTestResultsRecorded       = "test_results_recorded"
	EventCombatEventRecorded       = "combat_event_recorded"
	EventAttendanceRecorded        = "attendance_recorded"
	EventHistoryAccessDenied       = "history_access_denied"
)

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// SlogPublisher writes audit events to the structured log under a dedicated
// log_type so aggregation can separate them from request logs.
type SlogPublisher struct {
	logger *slog.Logger
}

func NewSlogPublisher(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{logger: logger}
}

func (p *SlogPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"actor_id", event.ActorID,
		"actor_email", event.ActorEmail,
		"athlete_id", event.AthleteID,
		"request_id", event.RequestID,
	)
	return nil
}

// InMemoryStore collects events for tests.
type InMemoryStore struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Emit(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *InMemoryStore) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

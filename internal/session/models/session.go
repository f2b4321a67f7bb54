package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dErrors "perf-service/pkg/domain-errors"
)

// Session is the aggregate root for one training session.
//
// Invariants:
//   - AthleteID is required
//   - EndTime, when set, is never before StartTime
//   - RPEScore, when set, is within [1,10]
//   - a session is finalized exactly once; no mutation afterwards
//
// Lifecycle: Start creates an open session (no end time, no score, no
// metrics). Finalize closes it, attaching the score and the full metric set
// in one step. Metrics never exist without their session and are persisted
// only as part of it.
type Session struct {
	ID                  uuid.UUID  `json:"id"`
	AthleteID           uuid.UUID  `json:"athlete_id"`
	RoutineAssignmentID *uuid.UUID `json:"routine_assignment_id,omitempty"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	RPEScore            *int       `json:"rpe_score,omitempty"`
	Metrics             []Metric   `json:"metrics,omitempty"`
}

// Metric is a single measurement owned by a session. Immutable after
// construction.
type Metric struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit"`
	MeasuredAt time.Time `json:"measured_at"`
}

// Start opens a new session for an athlete.
func Start(athleteID uuid.UUID, routineAssignmentID *uuid.UUID, startTime time.Time) (*Session, error) {
	if athleteID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "session requires an athlete")
	}
	if startTime.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "session requires a start time")
	}
	return &Session{
		ID:                  uuid.New(),
		AthleteID:           athleteID,
		RoutineAssignmentID: routineAssignmentID,
		StartTime:           startTime,
	}, nil
}

// MetricInput carries the caller-supplied fields of one metric.
type MetricInput struct {
	Type  string
	Value string
	Unit  string
}

// Finalize closes the session, attaching the effort score and metrics.
// The score is optional; when present it must be within [1,10]. A session
// can be finalized only once.
func (s *Session) Finalize(endTime time.Time, rpeScore *int, inputs []MetricInput) error {
	if s.Finalized() {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is already finalized")
	}
	if endTime.Before(s.StartTime) {
		return dErrors.New(dErrors.CodeInvariantViolation, "session end time cannot precede its start time")
	}
	if rpeScore != nil && (*rpeScore < 1 || *rpeScore > 10) {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("rpe score must be between 1 and 10, got %d", *rpeScore))
	}

	metrics := make([]Metric, 0, len(inputs))
	for _, in := range inputs {
		m, err := NewMetric(in.Type, in.Value, in.Unit, endTime)
		if err != nil {
			return err
		}
		metrics = append(metrics, m)
	}

	s.EndTime = &endTime
	s.RPEScore = rpeScore
	s.Metrics = metrics
	return nil
}

// Finalized reports whether the session has been closed.
func (s *Session) Finalized() bool {
	return s.EndTime != nil
}

// NewMetric validates and builds a metric.
func NewMetric(metricType, value, unit string, measuredAt time.Time) (Metric, error) {
	if metricType == "" {
		return Metric{}, dErrors.New(dErrors.CodeInvariantViolation, "metric type cannot be empty")
	}
	if value == "" {
		return Metric{}, dErrors.New(dErrors.CodeInvariantViolation, "metric value cannot be empty")
	}
	if unit == "" {
		return Metric{}, dErrors.New(dErrors.CodeInvariantViolation, "metric unit cannot be empty")
	}
	return Metric{
		ID:         uuid.New(),
		Type:       metricType,
		Value:      value,
		Unit:       unit,
		MeasuredAt: measuredAt,
	}, nil
}

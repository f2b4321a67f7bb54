// Package models holds the combat event entity.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dErrors "perf-service/pkg/domain-errors"
)

// Result is the standardized outcome of a combat event.
type Result string

const (
	ResultVictory       Result = "VICTORY"
	ResultDefeat        Result = "DEFEAT"
	ResultDraw          Result = "DRAW"
	ResultNotApplicable Result = "NOT_APPLICABLE"
)

// ParseResult validates a raw outcome value.
func ParseResult(raw string) (Result, error) {
	switch Result(raw) {
	case ResultVictory, ResultDefeat, ResultDraw, ResultNotApplicable:
		return Result(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("result must be one of VICTORY, DEFEAT, DRAW, NOT_APPLICABLE; got %q", raw))
	}
}

// Event records one combat event for an athlete: a sparring, an amateur bout
// or a professional fight.
//
// Invariants: athlete, event type and date are required; the date is never in
// the future; the result, when set, is one of the Result constants. Opponent
// and result stay optional for exhibition-style events.
type Event struct {
	ID           uuid.UUID `json:"id"`
	AthleteID    uuid.UUID `json:"athlete_id"`
	EventType    string    `json:"event_type"`
	Date         time.Time `json:"date"`
	OpponentName *string   `json:"opponent_name,omitempty"`
	Result       *Result   `json:"result,omitempty"`
}

// NewEvent validates and builds a combat event.
func NewEvent(athleteID uuid.UUID, eventType string, date time.Time, opponentName *string, result *Result, now time.Time) (*Event, error) {
	if athleteID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "combat event requires an athlete")
	}
	if eventType == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "combat event requires an event type")
	}
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "combat event requires a date")
	}
	if date.After(now) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "combat event date cannot be in the future")
	}
	if result != nil {
		if _, err := ParseResult(string(*result)); err != nil {
			return nil, err
		}
	}
	return &Event{
		ID:           uuid.New(),
		AthleteID:    athleteID,
		EventType:    eventType,
		Date:         date,
		OpponentName: opponentName,
		Result:       result,
	}, nil
}

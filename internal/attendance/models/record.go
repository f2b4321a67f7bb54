// Package models holds the attendance record entity.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "perf-service/pkg/domain-errors"
)

// Record marks one athlete present on one day.
//
// The date is normalized to midnight UTC so the same calendar day always
// compares equal; the store's conflict target relies on it. Duplicate
// presence is handled by skip-on-conflict writes, not by a uniqueness check
// here.
type Record struct {
	ID           uuid.UUID `json:"id"`
	AthleteID    uuid.UUID `json:"athlete_id"`
	Date         time.Time `json:"date"`
	RecordedByID uuid.UUID `json:"recorded_by_id"`
}

// NewRecord validates and builds an attendance record.
func NewRecord(athleteID uuid.UUID, date time.Time, recordedByID uuid.UUID) (*Record, error) {
	if athleteID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "attendance requires an athlete")
	}
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "attendance requires a date")
	}
	if recordedByID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "attendance requires the recording coach")
	}
	return &Record{
		ID:           uuid.New(),
		AthleteID:    athleteID,
		Date:         NormalizeDate(date),
		RecordedByID: recordedByID,
	}, nil
}

// NormalizeDate truncates a timestamp to midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

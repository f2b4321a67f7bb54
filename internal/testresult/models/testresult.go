// Package models holds the standardized-test result entity and its read
// models.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "perf-service/pkg/domain-errors"
)

// TestResult records one standardized-test outcome for an athlete.
//
// Invariants: athlete, test and raw value are required. The normalized score
// is optional and carried as supplied; it is not derived here.
type TestResult struct {
	ID              uuid.UUID `json:"id"`
	AthleteID       uuid.UUID `json:"athlete_id"`
	TestID          uuid.UUID `json:"test_id"`
	TestDate        time.Time `json:"test_date"`
	ResultValue     string    `json:"result_value"`
	NormalizedScore *float64  `json:"normalized_score,omitempty"`
}

// NewTestResult validates and builds a result dated now.
func NewTestResult(athleteID, testID uuid.UUID, value string, normalizedScore *float64, now time.Time) (*TestResult, error) {
	if athleteID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "test result requires an athlete")
	}
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "test result requires a test")
	}
	if value == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "test result requires a value")
	}
	return &TestResult{
		ID:              uuid.New(),
		AthleteID:       athleteID,
		TestID:          testID,
		TestDate:        now,
		ResultValue:     value,
		NormalizedScore: normalizedScore,
	}, nil
}

// Enriched joins a result with its test's display data from the catalog.
type Enriched struct {
	TestResult
	TestName string `json:"test_name"`
	TestUnit string `json:"test_unit"`
}

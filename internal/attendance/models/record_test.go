package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "perf-service/pkg/domain-errors"
)

func TestNewRecord(t *testing.T) {
	athleteID := uuid.New()
	coachID := uuid.New()

	t.Run("normalizes the date to midnight UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*3600)
		record, err := NewRecord(athleteID, time.Date(2026, 7, 25, 22, 45, 12, 0, loc), coachID)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 7, 26, 0, 0, 0, 0, time.UTC), record.Date)
	})

	t.Run("same calendar day compares equal after normalization", func(t *testing.T) {
		morning, err := NewRecord(athleteID, time.Date(2026, 7, 25, 8, 0, 0, 0, time.UTC), coachID)
		require.NoError(t, err)
		evening, err := NewRecord(athleteID, time.Date(2026, 7, 25, 21, 30, 0, 0, time.UTC), coachID)
		require.NoError(t, err)
		assert.Equal(t, morning.Date, evening.Date)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, time.Now(), coachID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewRecord(athleteID, time.Time{}, coachID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewRecord(athleteID, time.Now(), uuid.Nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

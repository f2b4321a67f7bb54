package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "perf-service/pkg/domain-errors"
)

func TestParseResult(t *testing.T) {
	for _, raw := range []string{"VICTORY", "DEFEAT", "DRAW", "NOT_APPLICABLE"} {
		result, err := ParseResult(raw)
		require.NoError(t, err)
		assert.Equal(t, Result(raw), result)
	}

	for _, raw := range []string{"", "victory", "WIN", "TIE"} {
		_, err := ParseResult(raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "raw %q", raw)
	}
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	athleteID := uuid.New()
	date := now.Add(-24 * time.Hour)

	t.Run("valid event", func(t *testing.T) {
		opponent := "J. Doe"
		result := ResultVictory
		event, err := NewEvent(athleteID, "Sparring", date, &opponent, &result, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, "Sparring", event.EventType)
		assert.Equal(t, ResultVictory, *event.Result)
	})

	t.Run("opponent and result are optional", func(t *testing.T) {
		event, err := NewEvent(athleteID, "Exhibition", date, nil, nil, now)
		require.NoError(t, err)
		assert.Nil(t, event.OpponentName)
		assert.Nil(t, event.Result)
	})

	t.Run("future date rejected", func(t *testing.T) {
		_, err := NewEvent(athleteID, "Sparring", now.Add(time.Hour), nil, nil, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := NewEvent(uuid.Nil, "Sparring", date, nil, nil, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewEvent(athleteID, "", date, nil, nil, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewEvent(athleteID, "Sparring", time.Time{}, nil, nil, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("bad result rejected", func(t *testing.T) {
		bad := Result("WIN")
		_, err := NewEvent(athleteID, "Sparring", date, nil, &bad, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

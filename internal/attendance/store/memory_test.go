package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perf-service/internal/attendance/models"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	day := time.Date(2026, 7, 25, 10, 0, 0, 0, time.UTC)

	record := func(t *testing.T, athleteID uuid.UUID, at time.Time) *models.Record {
		t.Helper()
		r, err := models.NewRecord(athleteID, at, coachID)
		require.NoError(t, err)
		return r
	}

	t.Run("writes a batch and reads it back", func(t *testing.T) {
		s := NewInMemoryStore()
		a, b := uuid.New(), uuid.New()

		written, err := s.SaveAll(ctx, []*models.Record{record(t, a, day), record(t, b, day)})
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		got, err := s.FindByAthleteID(ctx, a)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a, got[0].AthleteID)
	})

	t.Run("skips athletes already marked present on the same day", func(t *testing.T) {
		s := NewInMemoryStore()
		a, b := uuid.New(), uuid.New()

		_, err := s.SaveAll(ctx, []*models.Record{record(t, a, day)})
		require.NoError(t, err)

		// a at a different time of the same day still counts as present
		written, err := s.SaveAll(ctx, []*models.Record{record(t, a, day.Add(8*time.Hour)), record(t, b, day)})
		require.NoError(t, err)
		assert.Equal(t, 1, written)
	})

	t.Run("same athlete on a different day is a new record", func(t *testing.T) {
		s := NewInMemoryStore()
		a := uuid.New()

		_, err := s.SaveAll(ctx, []*models.Record{record(t, a, day)})
		require.NoError(t, err)

		written, err := s.SaveAll(ctx, []*models.Record{record(t, a, day.AddDate(0, 0, 1))})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		got, err := s.FindByAthleteID(ctx, a)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

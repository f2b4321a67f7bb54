package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"perf-service/internal/testresult/models"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	athleteID := uuid.New()
	testID := uuid.New()
	store.SeedCatalog(testID, CatalogEntry{Name: "Plank Hold", Unit: "seconds"})

	now := time.Now()
	first, err := models.NewTestResult(athleteID, testID, "120", nil, now)
	require.NoError(t, err)
	second, err := models.NewTestResult(athleteID, uuid.New(), "45", nil, now)
	require.NoError(t, err)
	require.NoError(t, store.SaveAll(ctx, []*models.TestResult{first, second}))

	t.Run("joins the catalog for known tests", func(t *testing.T) {
		results, err := store.FindByAthleteID(ctx, athleteID)
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Equal(t, "Plank Hold", results[0].TestName)
		require.Equal(t, "seconds", results[0].TestUnit)
	})

	t.Run("unknown catalog entries leave the name empty", func(t *testing.T) {
		results, err := store.FindByAthleteID(ctx, athleteID)
		require.NoError(t, err)
		require.Empty(t, results[1].TestName)
	})

	t.Run("other athletes see nothing", func(t *testing.T) {
		results, err := store.FindByAthleteID(ctx, uuid.New())
		require.NoError(t, err)
		require.Empty(t, results)
	})
}

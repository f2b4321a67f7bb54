package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPrincipal(t *testing.T) {
	id := uuid.New()
	ctx := WithPrincipal(context.Background(), id, "athlete@example.com", RoleAthlete)

	require.Equal(t, id, UserID(ctx))
	require.Equal(t, "athlete@example.com", Email(ctx))
	require.Equal(t, RoleAthlete, Role(ctx))
}

func TestPrincipalDefaults(t *testing.T) {
	ctx := context.Background()

	require.Equal(t, uuid.Nil, UserID(ctx))
	require.Empty(t, Email(ctx))
	require.Empty(t, Role(ctx))
}

func TestNow(t *testing.T) {
	t.Run("returns the request-scoped time when set", func(t *testing.T) {
		fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		require.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	})

	t.Run("falls back to the wall clock without middleware", func(t *testing.T) {
		require.WithinDuration(t, time.Now(), Now(context.Background()), time.Minute)
	})
}

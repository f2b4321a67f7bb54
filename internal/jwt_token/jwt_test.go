package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

func newTestService() *JWTService {
	return NewJWTService("test-signing-key", "identity-service", "perf-service")
}

func TestValidateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	t.Run("round trips subject, email, and role", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "coach@gym.example", requestcontext.RoleCoach, time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, "coach@gym.example", claims.Email)
		assert.Equal(t, requestcontext.RoleCoach, claims.Role)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "a@b.c", requestcontext.RoleAthlete, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects tokens signed with a different key", func(t *testing.T) {
		other := NewJWTService("other-key", "identity-service", "perf-service")
		token, err := other.GenerateAccessToken(userID, "a@b.c", requestcontext.RoleAthlete, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.Error(t, err)
	})
}

func TestJWTServiceAdapter(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	token, err := svc.GenerateAccessToken(userID, "athlete@gym.example", requestcontext.RoleAthlete, time.Hour)
	require.NoError(t, err)

	adapter := NewJWTServiceAdapter(svc)
	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, requestcontext.RoleAthlete, claims.Role)
}

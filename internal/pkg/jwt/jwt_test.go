//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	svc := jwt.NewService("secret", time.Hour, clk)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	svc := jwt.NewService("secret", time.Hour, clk)
	token, err := svc.GenerateToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := jwt.NewService("secret", time.Hour, clock.NewMockClock(clk.Now().Add(2*time.Hour)))
		_, err := later.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("other", time.Hour, clk)
		_, err := other.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

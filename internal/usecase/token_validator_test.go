//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, clk)
	v := usecase.NewTokenValidator(svc)

	t.Run("resolves the actor", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, user.RoleAdmin)
		require.NoError(t, err)

		actor, err := v.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, actor.UserID)
		assert.True(t, actor.IsAdmin())
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)
		clk.Add(2 * time.Hour)
		t.Cleanup(func() { clk.Add(-2 * time.Hour) })

		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("token without subject", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.Nil, user.RoleCustomer)
		require.NoError(t, err)

		_, err = v.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour, clk)
		token, err := other.GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)

		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

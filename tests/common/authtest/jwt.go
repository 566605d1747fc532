//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, clock.NewRealClock())
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose lifetime ended an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	issuedAt := clock.NewMockClock(time.Now().Add(-h.cfg.Duration - time.Hour))
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, issuedAt)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

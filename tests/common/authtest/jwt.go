//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/jwt"

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
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, time.Millisecond)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// CustomerToken mints a token for a fresh customer and returns both.
func (h *JWTHelper) CustomerToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	return userID, h.GenerateToken(t, userID, user.RoleCustomer)
}

func (h *JWTHelper) AdminToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	return userID, h.GenerateToken(t, userID, user.RoleAdmin)
}

package bootstrap

import (
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Duration)
}

package bootstrap

import (
	"log/slog"

	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log)
}

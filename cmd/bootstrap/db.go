package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"ticket-checkout/internal/infra/db"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB connects and migrates before handing the pool to anyone, so every
// consumer sees the current schema.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("database migrations applied")

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

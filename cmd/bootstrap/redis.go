package bootstrap

import (
	"context"
	"log/slog"

	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/infra/cache"
	"ticket-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewIdempotencyStore,
	),
)

// NewIdempotencyStore returns nil when REDIS_ADDR is unset; the middleware
// then lets every request through.
func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (middleware.IdempotencyStore, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("redis not configured, idempotency keys disabled")
		return nil, nil
	}

	client, err := cache.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewIdempotencyStore(client, cfg.Checkout), nil
}

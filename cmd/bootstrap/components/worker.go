package components

import (
	"context"
	"log/slog"

	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			func(p *messaging.Producer) *messaging.Producer { return p },
			fx.As(new(worker.Publisher)),
		),
		fx.Annotate(
			metrics.NewOutboxMetrics,
			fx.As(new(worker.RelayObserver)),
		),
		NewOutboxRelay,
	),
	fx.Invoke(StartOutboxRelay),
)

func NewOutboxRelay(
	store worker.OutboxStore,
	publisher worker.Publisher,
	observer worker.RelayObserver,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *worker.OutboxRelay {
	return worker.NewOutboxRelay(store, publisher, observer, clk, cfg.Outbox, logger)
}

func StartOutboxRelay(lc fx.Lifecycle, relay *worker.OutboxRelay, cfg config.Config, logger *slog.Logger) {
	if !cfg.Outbox.RelayEnabled {
		logger.Info("outbox relay disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				_ = relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

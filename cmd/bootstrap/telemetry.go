package bootstrap

import (
	"context"

	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/infra/telemetry"
	"ticket-checkout/internal/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Provide(
		NewTracerProvider,
		metrics.NewRegistry,
	),
	// Spans are created through the global provider, so force construction.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func NewTracerProvider(lc fx.Lifecycle, cfg config.Config) (*sdktrace.TracerProvider, error) {
	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}

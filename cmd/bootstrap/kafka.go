package bootstrap

import (
	"context"

	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewProducer,
	),
)

func NewProducer(lc fx.Lifecycle, cfg config.Config) *messaging.Producer {
	producer := messaging.NewProducer(cfg.Kafka)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer
}

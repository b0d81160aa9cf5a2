package bootstrap

import (
	"ticket-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TelemetryModule,
	DBModule,
	RedisModule,
	KafkaModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)

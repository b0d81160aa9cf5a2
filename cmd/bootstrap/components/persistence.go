package components

import (
	"log/slog"

	"ticket-checkout/internal/infra/readstore"
	"ticket-checkout/internal/infra/repository"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/infra/uow"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/internal/usecase/shared"
	"ticket-checkout/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Order history
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.OrderViewQueries)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		NewUnitOfWork,
		// Outbox, used outside checkout transactions by the relay
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.OutboxQueries)),
		),
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(worker.OutboxStore)),
		),
	),
)

func NewUnitOfWork(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.Config, logger *slog.Logger) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, q, cfg.Checkout, logger)
}

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

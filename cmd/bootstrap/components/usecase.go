package components

import (
	"log/slog"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		order.NewDefaultPriceCalculator,
		fx.As(new(order.PriceCalculator)),
	),
	fx.Annotate(
		metrics.NewCheckoutMetrics,
		fx.As(new(commands.CheckoutObserver)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewOrderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewOrderCommands(
	uow shared.UnitOfWork,
	calculator order.PriceCalculator,
	clk clock.Clock,
	observer commands.CheckoutObserver,
	cfg config.Config,
	logger *slog.Logger,
) commands.OrderCommands {
	return commands.NewOrderCommands(uow, calculator, clk, observer, commands.OrderOptions{
		MaxItems:           cfg.Checkout.MaxItems,
		VoucherOncePerUser: cfg.Checkout.VoucherOncePerUser,
	}, logger)
}

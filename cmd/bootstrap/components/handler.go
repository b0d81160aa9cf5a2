package components

import (
	"ticket-checkout/internal/handler"
	"ticket-checkout/internal/handler/api"
	"ticket-checkout/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewAdminOrderHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

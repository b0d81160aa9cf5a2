package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/handler/api"
	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	registry *metrics.Registry,
	orderHandler *api.OrderHandler,
	adminOrderHandler *api.AdminOrderHandler,
	authMiddleware *middleware.AuthMiddleware,
	idempotencyStore middleware.IdempotencyStore,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, registry, orderHandler, adminOrderHandler, authMiddleware, middleware.Idempotency(idempotencyStore, logger))
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	registry *metrics.Registry,
	orderHandler *api.OrderHandler,
	adminOrderHandler *api.AdminOrderHandler,
	authMiddleware *middleware.AuthMiddleware,
	idempotency gin.HandlerFunc,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(registry.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.Place, Mw: []gin.HandlerFunc{idempotency}},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.ListMine},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/orders", Handler: adminOrderHandler.List},
				{Method: http.MethodPatch, Path: "/orders/:id/status", Handler: adminOrderHandler.UpdateStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// Route middleware is registered as real gin handlers so it can wrap the
// handler with c.Next().
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}

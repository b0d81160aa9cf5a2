package middleware

import (
	"log/slog"
	"slices"

	"ticket-checkout/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always allows the Idempotency-Key request header, so a
// browser client can retry a checkout safely whatever the configured list.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowHeaders := slices.Clone(cfg.AllowHeaders)
	if !slices.Contains(allowHeaders, IdempotencyKeyHeader) {
		allowHeaders = append(allowHeaders, IdempotencyKeyHeader)
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
	"time"

	"ticket-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxRequestIDKey = "request_id"
	maxRequestIDLen = 64
)

// NewLogger builds the process logger from cfg and installs it as the slog
// default. Release mode logs JSON, everything else logs text.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogger logs one line per request once the handler chain is done.
// A client supplied X-Request-ID is kept, otherwise one is generated, and
// the id is echoed back on the response.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = newRequestID(start)
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
		}
		// auth runs per route, so the user is only known after c.Next
		if userID, ok := GetUserID(c); ok {
			attrs = append(attrs, slog.String("user_id", userID.String()))
		}
		if role, ok := GetUserRole(c); ok {
			attrs = append(attrs, slog.String("role", role.String()))
		}
		if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}
		if c.Writer.Header().Get(idempotencyHitHeader) != "" {
			attrs = append(attrs, slog.Bool("idempotent_replay", true))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

func newRequestID(now time.Time) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return now.UTC().Format("20060102150405.000000")
	}
	return now.UTC().Format("20060102150405") + "-" + hex.EncodeToString(b)
}

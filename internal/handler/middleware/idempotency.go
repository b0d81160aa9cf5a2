package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/infra/cache"
	"ticket-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyHitHeader = "X-Idempotency-Hit"
	maxIdempotencyKeyLen = 128
)

var (
	errIdempotencyKeyTooLong = errs.New("idempotency key too long")
	errRequestInProgress     = errs.New("request with this idempotency key is in progress")
	errIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
)

type IdempotencyStore interface {
	Begin(ctx context.Context, key string) (cache.IdempotencyState, *cache.StoredResponse, error)
	Complete(ctx context.Context, key string, resp cache.StoredResponse) error
	Release(ctx context.Context, key string) error
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response for a repeated Idempotency-Key,
// scoped to the authenticated user. Requests without the header pass
// through. A store outage fails open: the request runs unguarded.
// Server errors release the key so the client can retry. A key replayed
// with a different method, path or body is rejected with 422.
func Idempotency(store IdempotencyStore, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}
		raw := c.GetHeader(IdempotencyKeyHeader)
		if raw == "" {
			c.Next()
			return
		}
		if len(raw) > maxIdempotencyKeyLen {
			httperr.AbortWithCode(c, http.StatusBadRequest, "idempotency_key_too_long", errIdempotencyKeyTooLong, "Idempotency-Key is too long", nil)
			return
		}

		scope := "anonymous"
		if userID, ok := GetUserID(c); ok && userID != uuid.Nil {
			scope = userID.String()
		}
		key := cache.Key(scope, raw)
		ctx := c.Request.Context()

		fingerprint, err := requestFingerprint(c)
		if err != nil {
			httperr.AbortWithCode(c, http.StatusBadRequest, "", err, "Failed to read request body", nil)
			return
		}

		state, stored, err := store.Begin(ctx, key)
		if err != nil {
			logger.Warn("idempotency store unavailable, continuing unguarded", "error", err.Error())
			c.Next()
			return
		}

		switch state {
		case cache.StateCompleted:
			if stored.Fingerprint != "" && stored.Fingerprint != fingerprint {
				httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "idempotency_key_reused", errIdempotencyKeyReused, "Idempotency-Key was already used for a different request", nil)
				return
			}
			c.Header(idempotencyHitHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		case cache.StateInProgress:
			httperr.AbortWithCode(c, http.StatusConflict, "request_in_progress", errRequestInProgress, "Request is already being processed", nil)
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		// The request context may already be canceled once the handler returns.
		bg := context.WithoutCancel(ctx)
		status := rec.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(bg, key); err != nil {
				logger.Warn("failed to release idempotency key", "error", err.Error())
			}
			return
		}
		if err := store.Complete(bg, key, cache.StoredResponse{
			Status:      status,
			Body:        rec.body.Bytes(),
			Fingerprint: fingerprint,
		}); err != nil {
			logger.Warn("failed to store idempotent response", "error", err.Error())
		}
	}
}

// requestFingerprint hashes method, path and body, then restores the body for
// the handler.
func requestFingerprint(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", errs.Wrap(err, "failed to read request body")
		}
		_ = c.Request.Body.Close()
		body = b
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte{0})
	h.Write([]byte(c.Request.URL.Path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error when a handler aborted
// without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		writeInternalError(c)
	}
}

// CustomRecovery turns a panic into a 500 with the usual error envelope.
// A panic mid-checkout never commits: the transaction is rolled back by
// the unit of work before the panic reaches here.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := errs.New(fmt.Sprint(r))
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"error", err.Error(),
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"stack", errs.ExtractStackLines(err, 8),
				)
				writeInternalError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}

func writeInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, httperr.CodeInternal, "Internal server error", nil))
}

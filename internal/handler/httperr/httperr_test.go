//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		status int
		code   string
		want   string
	}{
		{http.StatusConflict, "insufficient_stock", "insufficient_stock"},
		{http.StatusConflict, "", httperr.CodeConflict},
		{http.StatusServiceUnavailable, "", httperr.CodeUnavailable},
		{http.StatusTeapot, "", httperr.CodeInternal},
	}
	for _, tt := range tests {
		resp := httperr.New(tt.status, tt.code, "msg", nil)
		assert.Equal(t, tt.want, resp.Error.Code)
		assert.Equal(t, tt.status, resp.Status)
	}
}

func TestAbortWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	cause := errs.New("stock gone")

	httperr.AbortWithCode(c, http.StatusConflict, "insufficient_stock", cause, "Insufficient ticket stock", nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"code":"insufficient_stock","message":"Insufficient ticket stock"}}`, w.Body.String())

	require.Len(t, c.Errors, 1)
	assert.Equal(t, cause, c.Errors[0].Err)
	var meta httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Equal(t, c.Errors[0].Meta.(httperr.Response).Error, meta.Error)
}

func TestAbortWithErrorRequiresCause(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "bad", nil)
	})
}

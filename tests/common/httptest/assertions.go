//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"ticket-checkout/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

// AssertErrorResponse decodes the httperr envelope and checks that its
// message contains expectedErrorMsg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "error body is not JSON: %s", w.Body.String()) {
		return
	}
	if expectedErrorMsg != "" {
		assert.Contains(t, resp.Error.Message, expectedErrorMsg, "unexpected error message")
	}
}

// AssertErrorCode checks the status and the machine readable code of the
// httperr envelope.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "error body is not JSON: %s", w.Body.String()) {
		return
	}
	assert.Equal(t, expectedCode, resp.Error.Code, "unexpected error code")
}

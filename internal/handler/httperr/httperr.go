package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Generic codes used when a handler has no more specific kind to report.
const (
	CodeBadRequest    = "bad_request"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeUnprocessable = "unprocessable"
	CodeUnavailable   = "unavailable"
	CodeInternal      = "internal"
)

// Body carries a stable machine readable code next to the human message.
type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

// New builds an envelope; an empty code falls back to the generic code for status.
func New(status int, code, msg string, detail any) Response {
	if code == "" {
		code = CodeForStatus(status)
	}
	return Response{Status: status, Error: Body{Code: code, Message: msg}, Detail: detail}
}

func CodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeUnprocessable
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// AbortWithError aborts with the generic code for status.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithCode(c, status, "", err, msg, detail)
}

// AbortWithCode writes the envelope and keeps err on the context for the
// request logger.
func AbortWithCode(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: aborting without an error")
	}

	resp := New(status, code, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-ai2docx"
)

// APIResponse is the envelope for JSON responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError aborts the chain with an error envelope.
func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// mapConvertError translates conversion errors to HTTP status codes and error codes.
func mapConvertError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "conversion timed out"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "CANCELED", "request canceled"
	case errors.Is(err, ai2docx.ErrPoolClosed):
		return http.StatusServiceUnavailable, "SHUTTING_DOWN", "server is shutting down"
	case errors.Is(err, ai2docx.ErrBrowserConnect),
		errors.Is(err, ai2docx.ErrPageCreate),
		errors.Is(err, ai2docx.ErrPageLoad):
		return http.StatusServiceUnavailable, "RENDERER_UNAVAILABLE", "equation renderer is unavailable"
	case errors.Is(err, ai2docx.ErrSerialization):
		return http.StatusInternalServerError, "SERIALIZATION_FAILED", "document could not be written"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// statusClientClosedRequest is the de facto code for requests the client abandoned.
const statusClientClosedRequest = 499

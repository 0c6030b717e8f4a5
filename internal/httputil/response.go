// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Public error messages. Authentication failures share one message so callers
// cannot tell an unknown user from a wrong password or a replayed token.
const (
	MessageInvalidCredentials = "Invalid User ID/Password"
	MessageForbidden          = "Access Denied"
	MessageNotFound           = "Resource Not Found"
	MessageInternal           = "Internal Server Error"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the message exposed to clients for err. Internal errors
// never leak their details.
func MessageFor(err error) string {
	switch StatusFor(err) {
	case http.StatusUnauthorized:
		return MessageInvalidCredentials
	case http.StatusForbidden:
		return MessageForbidden
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return err.Error()
	default:
		return MessageInternal
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes an ErrorResponse.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := StatusFor(err)

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, ErrorResponse{Error: MessageFor(err)})
}

// AbortWithError records err on the gin error channel and stops the handler
// chain. The error boundary middleware renders the response.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// LastError returns the most recent error recorded on the gin context, or nil.
func LastError(c *gin.Context) error {
	if last := c.Errors.Last(); last != nil {
		return last.Err
	}
	return nil
}

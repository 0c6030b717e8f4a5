package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/audit"
	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
)

// errRouteNotFound is raised for requests matching no route.
var errRouteNotFound = apperrors.Wrap(apperrors.ErrNotFound, "route not found")

// errorPayload is the payload of the audit event published for failed requests.
type errorPayload struct {
	URL    string `json:"url"`
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// CustomLoggerMiddleware logs one line per request with the request id
// assigned by the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}

		logger.Log(c.Request.Context(), level, "http request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// ErrorHandler is the error boundary. Handlers push errors on the gin error
// channel; after the chain returns, the last error is mapped to a status code,
// rendered as {"error": message} and published as an audit "error" event.
func ErrorHandler(notifier audit.Notifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := httputil.LastError(c)
		if err == nil {
			return
		}

		status := httputil.StatusFor(err)
		if !c.Writer.Written() {
			httputil.HandleErrorGin(c, err, logger)
		}

		notifier.Publish(c.Request.Context(), auditDomain.NamespaceDatabase, auditDomain.EventError, errorPayload{
			URL:    c.Request.URL.RequestURI(),
			Status: status,
			Error:  err.Error(),
		})
	}
}

// RecoveryHandler turns a panic into an internal error for ErrorHandler to render.
func RecoveryHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.Any("panic", recovered),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		httputil.AbortWithError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// NotFoundHandler handles requests matching no route. The 404 response and
// the audit event are produced by ErrorHandler.
func NotFoundHandler(c *gin.Context) {
	httputil.AbortWithError(c, errRouteNotFound)
}

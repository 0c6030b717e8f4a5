package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/httputil"
	"github.com/allisson/gatekeeper/internal/resource/domain"
)

// ModelParam is the route parameter holding the resource name.
const ModelParam = "model"

// ResolverMiddleware resolves the :model path segment against registry once per
// request and stores the handle in the request context. Unknown resources abort
// with ErrUnknownResource.
func ResolverMiddleware(registry *domain.Registry, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, handle, err := registry.Resolve(c.Param(ModelParam))
		if err != nil {
			logger.Debug("resource not resolved", slog.String("resource", name))
			httputil.AbortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(WithHandle(c.Request.Context(), handle))
		c.Next()
	}
}

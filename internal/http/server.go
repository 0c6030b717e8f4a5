// Package http provides the gateway HTTP server: router, error boundary,
// request logging, CORS, health endpoints and the metrics server.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/audit"
	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/config"
	"github.com/allisson/gatekeeper/internal/metrics"
	resourceDomain "github.com/allisson/gatekeeper/internal/resource/domain"
	resourceHTTP "github.com/allisson/gatekeeper/internal/resource/http"
)

// HomeMessage is the body of GET /.
const HomeMessage = "Welcome to the home page!"

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterDependencies groups everything SetupRouter wires into routes.
type RouterDependencies struct {
	AuthUseCase     authUseCase.AuthUseCase
	AuthHandler     *authHTTP.AuthHandler
	AdminHandler    *authHTTP.AdminHandler
	Registry        *resourceDomain.Registry
	Dispatcher      *resourceHTTP.Dispatcher
	Notifier        audit.Notifier
	MetricsProvider *metrics.Provider
}

// NewServer creates a server. db is pinged by the readiness endpoint.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// listen runs ListenAndServe, treating a graceful shutdown as success.
func listen(server *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name, slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the route table. ctx bounds background work started by
// middleware, such as rate limiter cleanup.
//
// Resource reads are public unless cfg.AuthGateReads is set. Mutations need the
// matching capability and admin routes need all four.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) {
	router := gin.New()

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	router.Use(ErrorHandler(deps.Notifier, s.logger))
	router.Use(RecoveryHandler(s.logger))

	router.NoRoute(NotFoundHandler)

	var rateLimit []gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimit = append(rateLimit, authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	// guard authenticates the caller, checks required and applies rate limiting.
	guard := func(required ...authDomain.Capability) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{authHTTP.AuthenticationMiddleware(deps.AuthUseCase, s.logger, required...)}
		return append(chain, rateLimit...)
	}
	// chain joins handler groups into one route handler list.
	chain := func(groups ...[]gin.HandlerFunc) []gin.HandlerFunc {
		var handlers []gin.HandlerFunc
		for _, group := range groups {
			handlers = append(handlers, group...)
		}
		return handlers
	}
	handler := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{h}
	}

	router.GET("/", s.homeHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	router.POST("/signup", deps.AuthHandler.SignupHandler)
	router.POST("/signin", chain(guard(), handler(deps.AuthHandler.SigninHandler))...)
	router.POST("/key", chain(guard(), handler(deps.AuthHandler.KeyHandler))...)

	admin := guard(authDomain.AllCapabilities()...)
	router.GET("/users", chain(admin, handler(deps.AdminHandler.ListUsersHandler))...)
	router.POST("/roles", chain(admin, handler(deps.AdminHandler.CreateRoleHandler))...)
	router.GET("/error", chain(admin, handler(deps.AdminHandler.ForceErrorHandler))...)

	var readGuard []gin.HandlerFunc
	if cfg.AuthGateReads {
		readGuard = guard(authDomain.ReadCapability)
	}
	resolve := handler(resourceHTTP.ResolverMiddleware(deps.Registry, s.logger))
	dispatcher := deps.Dispatcher

	api := router.Group("/api/v1/:" + resourceHTTP.ModelParam)
	api.GET("", chain(readGuard, resolve, handler(dispatcher.GetHandler))...)
	api.GET("/:"+resourceHTTP.IDParam, chain(readGuard, resolve, handler(dispatcher.GetHandler))...)
	api.POST("", chain(guard(authDomain.CreateCapability), resolve, handler(dispatcher.CreateHandler))...)
	api.POST("/random", chain(admin, resolve, handler(dispatcher.RandomHandler))...)
	api.PUT("/:"+resourceHTTP.IDParam,
		chain(guard(authDomain.UpdateCapability), resolve, handler(dispatcher.ReplaceHandler))...)
	api.PATCH("/:"+resourceHTTP.IDParam,
		chain(guard(authDomain.UpdateCapability), resolve, handler(dispatcher.UpdateHandler))...)
	api.DELETE("/:"+resourceHTTP.IDParam,
		chain(guard(authDomain.DeleteCapability), resolve, handler(dispatcher.DeleteHandler))...)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. SetupRouter must run first.
func (s *Server) Start(_ context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) homeHandler(c *gin.Context) {
	c.String(http.StatusOK, HomeMessage)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

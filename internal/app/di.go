// Package app provides the dependency injection container that assembles the
// gateway from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/gatekeeper/internal/config"
	"github.com/allisson/gatekeeper/internal/database"
	"github.com/allisson/gatekeeper/internal/metrics"
)

// component memoizes a fallible constructor. The first result, value or
// error, is returned by every later call.
type component[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (c *component[T]) get(init func() (T, error)) (T, error) {
	c.once.Do(func() {
		c.value, c.err = init()
	})
	return c.value, c.err
}

// closer releases a resource during Shutdown.
type closer struct {
	name  string
	close func(ctx context.Context) error
}

// Container holds all application dependencies. Components are created on
// first access and every component owning a resource registers a closer.
type Container struct {
	config *config.Config

	loggerInit sync.Once
	logger     *slog.Logger

	db              component[*sql.DB]
	txManager       component[database.TxManager]
	redis           component[*redis.Client]
	metricsProvider component[*metrics.Provider]
	businessMetrics component[metrics.BusinessMetrics]

	auth     authComponents
	audit    auditComponents
	resource resourceComponents
	servers  serverComponents

	mu      sync.Mutex
	closers []closer
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns a JSON logger writing to stdout at the configured level.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLogLevel(c.config.LogLevel),
		}))
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	return c.db.get(func() (*sql.DB, error) {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.onShutdown("database", func(context.Context) error { return db.Close() })
		return db, nil
	})
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return c.txManager.get(func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// Redis returns a client for RedisURL. It is only created when a component
// configured to use redis asks for it.
func (c *Container) Redis() (*redis.Client, error) {
	return c.redis.get(func() (*redis.Client, error) {
		opts, err := redis.ParseURL(c.config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		c.onShutdown("redis", func(context.Context) error { return client.Close() })
		return client, nil
	})
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return c.metricsProvider.get(func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		provider, err := metrics.NewProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics provider: %w", err)
		}
		c.onShutdown("metrics provider", provider.Shutdown)
		return provider, nil
	})
}

// BusinessMetrics returns the use case metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return c.businessMetrics.get(func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// Shutdown releases every initialized resource in reverse creation order.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s shutdown: %w", closers[i].name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Container) onShutdown(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, closer{name: name, close: fn})
}

// parseLogLevel maps names such as "debug" or "WARN" to a level. Unknown
// names fall back to info.
func parseLogLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// unsupportedDriver is returned by every repository selector.
func unsupportedDriver(driver string) error {
	return fmt.Errorf("unsupported database driver: %s", driver)
}

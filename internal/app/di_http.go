package app

import (
	"context"
	"fmt"

	"github.com/allisson/gatekeeper/internal/http"
)

type serverComponents struct {
	httpServer    component[*http.Server]
	metricsServer component[*http.MetricsServer]
}

// HTTPServer returns the API server with its routes configured. ctx bounds
// background work started by middleware and should live as long as the server.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	return c.servers.httpServer.get(func() (*http.Server, error) {
		deps, err := c.routerDependencies()
		if err != nil {
			return nil, fmt.Errorf("failed to build router dependencies: %w", err)
		}
		db, err := c.DB()
		if err != nil {
			return nil, err
		}

		server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
		server.SetupRouter(ctx, c.config, deps)
		return server, nil
	})
}

// MetricsServer returns the /metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return c.servers.metricsServer.get(func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil || provider == nil {
			return nil, err
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

func (c *Container) routerDependencies() (http.RouterDependencies, error) {
	var deps http.RouterDependencies
	var err error

	if deps.AuthUseCase, err = c.AuthUseCase(); err != nil {
		return deps, err
	}
	if deps.AuthHandler, err = c.AuthHandler(); err != nil {
		return deps, err
	}
	if deps.AdminHandler, err = c.AdminHandler(); err != nil {
		return deps, err
	}
	if deps.Registry, err = c.Registry(); err != nil {
		return deps, err
	}
	if deps.Dispatcher, err = c.Dispatcher(); err != nil {
		return deps, err
	}
	if deps.Notifier, err = c.Notifier(); err != nil {
		return deps, err
	}
	if deps.MetricsProvider, err = c.MetricsProvider(); err != nil {
		return deps, err
	}
	return deps, nil
}

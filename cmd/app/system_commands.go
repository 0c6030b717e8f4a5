package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(cfg *config.Config, container *app.Container) error {
					logger := container.Logger()
					logger.Info("starting gatekeeper", slog.String("version", version))

					ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer cancel()

					api, err := container.HTTPServer(ctx)
					if err != nil {
						return fmt.Errorf("failed to initialize HTTP server: %w", err)
					}

					metricsServer, err := container.MetricsServer()
					if err != nil {
						return fmt.Errorf("failed to initialize metrics server: %w", err)
					}
					var metricsRunner commands.Runner
					if metricsServer != nil {
						metricsRunner = metricsServer
					}

					// the outbox is drained in-process too; a separate worker may run alongside
					var relay commands.Relay
					if cfg.AuditPublisher == "outbox" {
						outboxRelay, err := container.OutboxUseCase()
						if err != nil {
							return fmt.Errorf("failed to initialize outbox relay: %w", err)
						}
						relay = outboxRelay
					}

					return commands.RunServer(ctx, logger, api, metricsRunner, relay, cfg.DBConnMaxLifetime)
				})
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "path",
					Aliases: []string{"p"},
					Value:   "migrations",
					Usage:   "Directory holding the per-driver migration folders",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(
						container.Logger(),
						cfg.DBDriver,
						cfg.DBConnectionString,
						cmd.String("path"),
					)
				})
			},
		},
		{
			Name:  "worker",
			Usage: "Relay audit events stored in the outbox",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(func(cfg *config.Config, container *app.Container) error {
					ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer cancel()

					relay, err := container.OutboxUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize outbox relay: %w", err)
					}
					return commands.RunWorker(ctx, container.Logger(), relay)
				})
			},
		},
	}
}

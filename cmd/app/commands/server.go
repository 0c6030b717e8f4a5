package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner is a long-running component stopped through Shutdown.
type Runner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Relay is a background loop that stops when its context is done.
type Relay interface {
	Start(ctx context.Context) error
}

// RunServer starts the API server plus the optional metrics server and outbox
// relay, and blocks until ctx is done or one of them fails. Servers are then
// shut down gracefully within shutdownTimeout.
func RunServer(
	ctx context.Context,
	logger *slog.Logger,
	api Runner,
	metricsServer Runner,
	relay Relay,
	shutdownTimeout time.Duration,
) error {
	group, groupCtx := errgroup.WithContext(ctx)

	runners := []Runner{api}
	if metricsServer != nil {
		runners = append(runners, metricsServer)
	}

	for _, runner := range runners {
		group.Go(func() error {
			return runner.Start(groupCtx)
		})
	}

	if relay != nil {
		group.Go(func() error {
			if err := relay.Start(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay: %w", err)
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, runner := range runners {
			if err := runner.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return group.Wait()
}

package commands

import (
	"context"
	"errors"
	"log/slog"
)

// RunWorker relays outbox events until ctx is done.
func RunWorker(ctx context.Context, logger *slog.Logger, relay Relay) error {
	logger.Info("starting outbox worker")

	if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("outbox worker stopped")
	return nil
}

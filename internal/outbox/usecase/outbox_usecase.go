// Package usecase relays audit events stored in the transactional outbox.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/gatekeeper/internal/database"
	"github.com/allisson/gatekeeper/internal/outbox/domain"
)

// Config holds outbox relay configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers a single outbox event downstream.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the outbox relay operations.
type UseCase interface {
	// Start relays events every Config.Interval until ctx is done.
	Start(ctx context.Context) error

	// ProcessEvents relays one batch of pending events and returns how many
	// were delivered.
	ProcessEvents(ctx context.Context) (int, error)
}

// OutboxUseCase relays pending outbox events through an EventProcessor.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
	now            func() time.Time
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
		now:            time.Now,
	}
}

// Start runs the relay loop.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox relay",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox relay")
			return ctx.Err()
		case <-ticker.C:
			if _, err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to relay outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents relays a batch inside one transaction so the row locks taken
// by GetPendingEvents are held until every status update is written.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) (int, error) {
	delivered := 0

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		delivered = 0

		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("relaying outbox events", slog.Int("count", len(events)))

		for _, event := range events {
			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				event.MarkFailed(err, uc.config.MaxRetries, uc.now().UTC())

				uc.logger.Error("failed to relay outbox event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.Int("retries", event.Retries),
					slog.String("status", string(event.Status)),
					slog.Any("error", err),
				)
			} else {
				event.MarkProcessed(uc.now().UTC())
				delivered++
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return delivered, nil
}

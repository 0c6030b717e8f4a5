package audit

import (
	"context"
	"log/slog"

	"github.com/allisson/gatekeeper/internal/audit/domain"
)

// LogPublisher writes events to the structured logger.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher logging at info level.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.Event) error {
	p.logger.InfoContext(ctx, "audit event",
		slog.String("event_id", event.ID.String()),
		slog.String("namespace", event.Namespace),
		slog.String("event", event.Name),
		slog.Any("payload", event.Payload),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}

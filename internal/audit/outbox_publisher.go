package audit

import (
	"context"
	"encoding/json"

	"github.com/allisson/gatekeeper/internal/audit/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	outboxDomain "github.com/allisson/gatekeeper/internal/outbox/domain"
)

// OutboxWriter stores outbox events.
type OutboxWriter interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// OutboxPublisher persists events to the transactional outbox. The worker
// command relays them to the configured downstream publisher.
type OutboxPublisher struct {
	writer OutboxWriter
}

// NewOutboxPublisher creates a publisher writing to the outbox.
func NewOutboxPublisher(writer OutboxWriter) *OutboxPublisher {
	return &OutboxPublisher{writer: writer}
}

// Publish stores event as a pending outbox row.
func (p *OutboxPublisher) Publish(ctx context.Context, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event")
	}

	outboxEvent := &outboxDomain.OutboxEvent{
		ID:        event.ID,
		EventType: event.Type(),
		Payload:   string(data),
		Status:    outboxDomain.OutboxEventStatusPending,
		CreatedAt: event.OccurredAt,
		UpdatedAt: event.OccurredAt,
	}

	if err := p.writer.Create(ctx, outboxEvent); err != nil {
		return apperrors.Wrap(err, "failed to store audit event in outbox")
	}
	return nil
}

// RelayProcessor decodes outbox rows written by OutboxPublisher and forwards
// them to a downstream publisher.
type RelayProcessor struct {
	publisher Publisher
}

// NewRelayProcessor creates an outbox event processor forwarding to publisher.
func NewRelayProcessor(publisher Publisher) *RelayProcessor {
	return &RelayProcessor{publisher: publisher}
}

// Process forwards a single outbox event.
func (r *RelayProcessor) Process(ctx context.Context, outboxEvent *outboxDomain.OutboxEvent) error {
	var event domain.Event
	if err := json.Unmarshal([]byte(outboxEvent.Payload), &event); err != nil {
		return apperrors.Wrap(err, "failed to decode outbox payload")
	}
	return r.publisher.Publish(ctx, &event)
}

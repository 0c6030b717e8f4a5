// Package domain defines the transactional outbox entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the delivery state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is an audit event waiting to be relayed downstream.
// Payload holds the JSON encoded audit event.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkProcessed records a successful delivery.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a failed delivery attempt. The event stays pending until
// maxRetries attempts have failed.
func (e *OutboxEvent) MarkFailed(err error, maxRetries int, now time.Time) {
	message := err.Error()
	e.Retries++
	e.LastError = &message
	e.UpdatedAt = now
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}

// Package audit publishes audit events about data access and request failures.
//
// Handlers call Notifier.Publish, which never blocks on and never fails because
// of the backend. An AsyncNotifier hands events to a Publisher (slog, Redis
// pub/sub, Kafka or the transactional outbox) on a background goroutine.
package audit

import (
	"context"

	"github.com/allisson/gatekeeper/internal/audit/domain"
)

// Notifier is the fire-and-forget audit entry point used by request handlers.
type Notifier interface {
	Publish(ctx context.Context, namespace, event string, payload any)
}

// Publisher delivers a single event to a backend.
type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// NopNotifier discards every event.
type NopNotifier struct{}

// Publish does nothing.
func (NopNotifier) Publish(context.Context, string, string, any) {}

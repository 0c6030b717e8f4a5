package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/audit/domain"
)

const (
	defaultQueueSize = 1024
	publishTimeout   = 5 * time.Second
)

// AsyncNotifier queues events in a bounded buffer drained by one goroutine.
// A full queue drops the event with a warning instead of blocking the caller.
type AsyncNotifier struct {
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *domain.Event
	done   chan struct{}
}

// NewAsyncNotifier creates the notifier and starts its delivery goroutine.
// Call Close to flush the queue and stop the goroutine.
func NewAsyncNotifier(publisher Publisher, queueSize int, logger *slog.Logger) *AsyncNotifier {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	n := &AsyncNotifier{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		queue:     make(chan *domain.Event, queueSize),
		done:      make(chan struct{}),
	}

	go n.run()

	return n
}

// Publish encodes payload and enqueues the event. It never blocks.
func (n *AsyncNotifier) Publish(ctx context.Context, namespace, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("audit event dropped: payload is not serializable",
			slog.String("namespace", namespace),
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	e := &domain.Event{
		ID:         uuid.Must(uuid.NewV7()),
		Namespace:  namespace,
		Name:       event,
		Payload:    data,
		OccurredAt: n.now().UTC(),
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.logger.Warn("audit event dropped: notifier closed", slog.String("type", e.Type()))
		return
	}

	select {
	case n.queue <- e:
	default:
		n.logger.Warn("audit event dropped: queue full",
			slog.String("type", e.Type()),
			slog.Int("capacity", cap(n.queue)))
	}
}

// Close stops accepting events and waits until queued events are delivered
// or ctx is done.
func (n *AsyncNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *AsyncNotifier) run() {
	defer close(n.done)

	for event := range n.queue {
		n.deliver(event)
	}
}

func (n *AsyncNotifier) deliver(event *domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("failed to publish audit event",
			slog.String("event_id", event.ID.String()),
			slog.String("type", event.Type()),
			slog.Any("error", err))
	}
}

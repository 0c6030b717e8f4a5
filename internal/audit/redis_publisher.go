package audit

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/gatekeeper/internal/audit/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// RedisPublisher publishes events on Redis pub/sub. The channel is the
// configured prefix followed by the event namespace, e.g. "gatekeeper.database".
type RedisPublisher struct {
	client        redis.UniversalClient
	channelPrefix string
}

// NewRedisPublisher creates a Redis pub/sub publisher.
func NewRedisPublisher(client redis.UniversalClient, channelPrefix string) *RedisPublisher {
	return &RedisPublisher{client: client, channelPrefix: channelPrefix}
}

// Channel returns the channel used for namespace.
func (p *RedisPublisher) Channel(namespace string) string {
	return p.channelPrefix + namespace
}

// Publish sends the JSON encoded event.
func (p *RedisPublisher) Publish(ctx context.Context, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event")
	}

	if err := p.client.Publish(ctx, p.Channel(event.Namespace), data).Err(); err != nil {
		return apperrors.Wrap(err, "failed to publish audit event to redis")
	}
	return nil
}

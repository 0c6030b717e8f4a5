package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

const defaultReplayKeyPrefix = "gatekeeper:used-token:"

// redisReplayStore shares consumed tokens across every gateway instance.
type redisReplayStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// MarkUsed uses SET NX so the check and the insert are a single atomic step.
// The key expires together with the token.
func (s *redisReplayStore) MarkUsed(ctx context.Context, key string, expiresAt *time.Time) (bool, error) {
	var ttl time.Duration
	if expiresAt != nil {
		ttl = expiresAt.Sub(s.now())
		if ttl < time.Second {
			ttl = time.Second
		}
	}

	first, err := s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "redis setnx failed")
	}
	return first, nil
}

// NewRedisReplayStore creates a ReplayStore backed by Redis.
func NewRedisReplayStore(client redis.UniversalClient) ReplayStore {
	return &redisReplayStore{
		client: client,
		prefix: defaultReplayKeyPrefix,
		now:    time.Now,
	}
}

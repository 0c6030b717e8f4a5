package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrReplayStoreFull is returned when a bounded replay store cannot remember
// another token without forgetting one that has not expired yet.
var ErrReplayStoreFull = errors.New("replay store is full")

// memoryReplayStore keeps consumed token signatures in an expirable LRU.
// Entries live as long as a session token, after which the token is rejected
// by its own expiry claim anyway. The LRU itself is unbounded; size is
// enforced here so an entry is only ever dropped by expiry.
type memoryReplayStore struct {
	mu    sync.Mutex
	size  int
	cache *expirable.LRU[string, struct{}]
}

// MarkUsed records key unless it is already present. A bounded store that is
// full fails closed with ErrReplayStoreFull.
func (s *memoryReplayStore) MarkUsed(_ context.Context, key string, _ *time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache.Get(key); ok {
		return false, nil
	}
	if s.size > 0 && s.liveEntries() >= s.size {
		return false, ErrReplayStoreFull
	}
	s.cache.Add(key, struct{}{})
	return true, nil
}

// liveEntries counts entries that have not expired. Keys skips expired
// entries the background purge has not removed yet.
func (s *memoryReplayStore) liveEntries() int {
	return len(s.cache.Keys())
}

// NewMemoryReplayStore creates a process-local ReplayStore. size caps the
// number of remembered tokens (0 is unbounded) and ttl should match the
// session token expiration (0 remembers tokens for the life of the process).
func NewMemoryReplayStore(size int, ttl time.Duration) ReplayStore {
	return &memoryReplayStore{
		size:  size,
		cache: expirable.NewLRU[string, struct{}](0, nil, ttl),
	}
}

package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var (
	_ saga.IdempotencyStore = (*RedisIdempotencyStore)(nil)
	_ saga.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
)

type redisCommands interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisIdempotencyStore keeps processed-event keys in Redis with a TTL
type RedisIdempotencyStore struct {
	rdb redisCommands
	ttl time.Duration
}

// NewRedisIdempotencyStore creates a new RedisIdempotencyStore
func NewRedisIdempotencyStore(rdb redisCommands, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

// Seen reports whether key was already marked
func (s *RedisIdempotencyStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check idempotency key")
	}
	return n > 0, nil
}

// Mark records key; marking twice is harmless
func (s *RedisIdempotencyStore) Mark(ctx context.Context, key string) error {
	if err := s.rdb.SetNX(ctx, key, "1", s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set idempotency key")
	}
	return nil
}

// MemoryIdempotencyStore is the single-process store used by the memory driver and tests
type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{keys: make(map[string]struct{})}
}

func (s *MemoryIdempotencyStore) Seen(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *MemoryIdempotencyStore) Mark(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = struct{}{}
	return nil
}

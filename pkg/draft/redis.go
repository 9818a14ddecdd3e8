package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps slots in Redis so several terminals share one set of
// drafts. The client lifecycle is managed by the caller.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL expires slots after ttl. Zero keeps them until deleted.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithNamespace prefixes every slot key, e.g. with a clinic identifier.
func WithNamespace(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore constructs a Redis-backed store.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft: redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("draft: redis del %s: %w", key, err)
	}
	return nil
}

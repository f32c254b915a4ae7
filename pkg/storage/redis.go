package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed key-value store. It lets multiple shell
// instances share one durable session record.
type RedisStore struct {
	client redis.Cmdable
	prefix string

	mu     sync.Mutex
	closed bool
}

// RedisOption configures RedisStore behavior.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every key.
// Default: "appshell:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed store on top of an existing client.
// Close does not close the client; it may be shared with other components.
func NewRedisStore(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "appshell:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// Set stores a value under key with no expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// Get retrieves the value for key, if present.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.isClosed() {
		return "", false, ErrStoreClosed{}
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Delete removes a key from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	return s.client.Del(ctx, s.key(key)).Err()
}

// Close marks the store as closed.
// Note: this does not close the underlying Redis client,
// as it may be shared with other components.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *RedisStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Prefix returns the current key prefix.
// This is for testing/debugging purposes.
func (s *RedisStore) Prefix() string {
	return s.prefix
}

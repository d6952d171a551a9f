package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// RedisStore adapts the Redis client to the key/value contract used by the
// local stores. Entries are written without expiry so user data survives
// restarts. Failed reads surface as missing keys.
type RedisStore struct {
	client *RedisClient
}

// NewRedisStore wraps a Redis client as a persistent key/value store.
func NewRedisStore(client *RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(key string) (string, bool) {
	val, err := s.client.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, ErrCacheNotFound) {
			log.Warn("redis store read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(key, value string) error {
	return s.client.Set(context.Background(), key, value, 0)
}

func (s *RedisStore) Remove(key string) {
	if err := s.client.Delete(context.Background(), key); err != nil {
		log.Warn("redis store delete failed", zap.String("key", key), zap.Error(err))
	}
}

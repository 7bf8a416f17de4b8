package leadstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the lead list as a plain string value without TTL.
type RedisBackend struct {
	redis *redis.Client
}

// NewRedisBackend wraps a connected client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	if client == nil {
		panic("leadstore: redis client cannot be nil")
	}
	return &RedisBackend{redis: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("leadstore: redis get: %w", err)
	}
	return data, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.redis.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("leadstore: redis set: %w", err)
	}
	return nil
}

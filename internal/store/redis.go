package store

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisBlobs backend Redis. Sem TTL: os blobs são o estado durável.
type RedisBlobs struct {
	client *redis.Client
}

func NewRedisBlobs(client *redis.Client) *RedisBlobs {
	return &RedisBlobs{client: client}
}

func (r *RedisBlobs) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *RedisBlobs) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

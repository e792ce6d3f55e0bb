package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV persists timer records in Redis. Entries carry a generous TTL so
// abandoned payment sessions do not accumulate forever.
type RedisKV struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{Client: client, TTL: 24 * time.Hour}
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	return s.Client.Set(ctx, key, value, s.TTL).Err()
}

func (s *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(ctx, keys...).Err()
}

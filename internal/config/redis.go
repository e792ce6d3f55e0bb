package config

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb   *redis.Client
	rdbMu sync.Mutex
)

// ConnectRedis initializes the shared Redis connection (idempotent).
// Returns nil when no REDIS_ADDR is configured; callers fall back to the
// in-memory store in that case.
func ConnectRedis(env Env) *redis.Client {
	rdbMu.Lock()
	defer rdbMu.Unlock()

	if rdb != nil {
		return rdb
	}
	if env.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         env.RedisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis ping failed (%s): %v", env.RedisAddr, err)
	}

	rdb = client
	return rdb
}

// CloseRedis closes the shared connection when present.
func CloseRedis() {
	rdbMu.Lock()
	defer rdbMu.Unlock()

	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
	rdb = nil
}

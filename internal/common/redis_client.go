package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skylane/concourse/internal/logging"
)

// NewRedisClient builds the shared Redis client used by the queue service
// and the Redis-backed cache. A failed ping is logged but not fatal; the
// pool reconnects on demand.
func NewRedisClient(host, port, password string) *redis.Client {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Redis ping failed, queue and cache will retry on use",
			"addr", addr,
			"error", err.Error(),
		)
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}

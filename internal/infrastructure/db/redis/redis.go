// Package redis owns the Redis connection backing the login throttle.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config holds the throttle store's connection settings.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a client for the throttle store and pings it once up
// front. The limiter itself fails open on later Redis errors, so a broken
// address should surface here at startup, not silently at login time.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("throttle store ping: %w", err)
	}

	return client, nil
}

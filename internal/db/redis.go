package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates a Redis client for connString and pings it. Both a
// bare "host:port" and a "redis://" URL are accepted.
func NewRedisClient(ctx context.Context, connString string) (*redis.Client, error) {
	if connString == "" {
		connString = "localhost:6379"
	}

	opts := &redis.Options{Addr: connString}
	if strings.HasPrefix(connString, "redis://") || strings.HasPrefix(connString, "rediss://") {
		parsed, err := redis.ParseURL(connString)
		if err != nil {
			return nil, fmt.Errorf("invalid redis connection string: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)

	// Ping the server to ensure the connection is established.
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}

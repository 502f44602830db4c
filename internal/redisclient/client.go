package redisclient

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/elliottking-cpu/beast-app-sub003/internal/config"
)

// New creates a redis client from config.
func New(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping verifies the connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// Close closes the client.
func Close(client *redis.Client) error {
	return client.Close()
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewIdempotencyStore returns a Redis-backed store when client is non-nil,
// otherwise an in-memory store
func NewIdempotencyStore(client redis.UniversalClient, logger *zap.Logger) IdempotencyStore {
	if client != nil {
		return NewRedisIdempotencyStore(client, "")
	}
	logger.Warn("redis unavailable, idempotency keys are kept in memory and not shared between instances")
	return NewInMemoryIdempotencyStore()
}

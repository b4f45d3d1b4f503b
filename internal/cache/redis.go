package cache

import (
	"context"
	"fmt"
	"time"

	"quiz-tutor/internal/config"
	"quiz-tutor/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 3 * time.Second

// NewRedisClient creates a Redis client and pings the server once.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	logger.Get().Info("Connected to Redis", zap.String("address", redisCfg.Address), zap.Int("db", redisCfg.DB))
	return client, nil
}

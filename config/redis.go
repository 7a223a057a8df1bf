package config

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func ConnectRedis(ctx context.Context, cfg *Config, log *zap.Logger) (*redis.Client, error) {
	redisURL := cfg.RedisURL
	if redisURL == "" {
		// Default to local Redis for development
		redisURL = "redis://localhost:6379"
		log.Warn("⚠️  REDIS_URL not set, using local Redis", zap.String("url", redisURL))
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}

	client := redis.NewClient(opt)

	// test connection
	res, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	log.Info("✅ Connected to Redis", zap.String("ping", res))
	return client, nil
}

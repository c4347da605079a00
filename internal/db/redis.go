package db

import (
	"errand-runner/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the configured address, or nil when no
// address is set. The client connects lazily.
func ConnectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

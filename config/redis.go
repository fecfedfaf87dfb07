package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the schedule cache. It returns nil when caching is not
// configured or the server does not answer a ping, and callers run without a cache.
func NewRedisClient(cfg *Config) *redis.Client {
	if !cfg.CacheEnabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis at %s unavailable, schedule cache disabled: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	log.Printf("Schedule cache connected to Redis at %s", cfg.RedisAddr)
	return client
}

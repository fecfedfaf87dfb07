package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/autoservice/garage-api/models"
	"github.com/redis/go-redis/v9"
)

// ScheduleCache stores day schedules between order writes
type ScheduleCache interface {
	// Key names the entry for day ("" means all days) under the current generation.
	// A reader reads and fills the same key, so rows loaded before a write commits
	// land under a generation nobody reads any more.
	Key(ctx context.Context, day string) (string, error)

	// Get returns the orders cached under key
	Get(ctx context.Context, key string) ([]models.Order, bool, error)

	// Set stores the orders under key
	Set(ctx context.Context, key string, orders []models.Order) error

	// Invalidate drops every cached day
	Invalidate(ctx context.Context) error
}

const (
	scheduleGenerationKey = "schedule:generation"
	allDaysKey            = "all"
)

// RedisScheduleCache keys entries by a generation counter so a single INCR invalidates all days
type RedisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

var scheduleCacheInstance ScheduleCache

// NewRedisScheduleCache wraps a connected redis client
func NewRedisScheduleCache(client *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{client: client, ttl: ttl}
}

// GetScheduleCache returns the process-wide schedule cache (nil when caching is off)
func GetScheduleCache() ScheduleCache {
	return scheduleCacheInstance
}

// SetScheduleCache sets the process-wide schedule cache
func SetScheduleCache(cache ScheduleCache) {
	scheduleCacheInstance = cache
}

func (c *RedisScheduleCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, scheduleGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Key returns schedule:<generation>:<day|all>
func (c *RedisScheduleCache) Key(ctx context.Context, day string) (string, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read schedule generation: %w", err)
	}
	return scheduleKey(gen, day), nil
}

func scheduleKey(gen int64, day string) string {
	if day == "" {
		day = allDaysKey
	}
	return fmt.Sprintf("schedule:%d:%s", gen, day)
}

// Get returns the cached orders for key
func (c *RedisScheduleCache) Get(ctx context.Context, key string) ([]models.Order, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read schedule cache: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached schedule: %w", err)
	}
	return orders, true, nil
}

// Set stores the orders under key. The key keeps the generation it was taken at.
func (c *RedisScheduleCache) Set(ctx context.Context, key string, orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write schedule cache: %w", err)
	}
	return nil
}

// Invalidate bumps the generation; old entries expire on their own
func (c *RedisScheduleCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, scheduleGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate schedule cache: %w", err)
	}
	return nil
}

// invalidateSchedule is called after every committed write that changes cached orders
func invalidateSchedule(ctx context.Context, cache ScheduleCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("Schedule cache: %v", err)
	}
}

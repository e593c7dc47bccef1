// package rediscache provides a small Redis-backed cache for the statistics
// dashboard. A nil client disables caching entirely, so the service keeps
// working without Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtsierradev/servicio-social/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	client *redis.Client
	log    *slog.Logger
}

// NewClient connects to Redis per the config. It returns nil (and no error)
// when caching is disabled.
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can't connect to redis: %w", err)
	}

	return client, nil
}

func New(client *redis.Client, log *slog.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Get unmarshals the cached value for key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	const op = "internal.repository.rediscache.Get"

	if c.client == nil {
		return ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}

		return fmt.Errorf("%s: failed to get key '%s': %w", op, key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: failed to unmarshal value for '%s': %w", op, key, err)
	}

	return nil
}

// Set marshals value and stores it under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	const op = "internal.repository.rediscache.Set"

	if c.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal value for '%s': %w", op, key, err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to set key '%s': %w", op, key, err)
	}

	return nil
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	const op = "internal.repository.rediscache.Invalidate"

	if c.client == nil || len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: failed to delete keys: %w", op, err)
	}

	return nil
}

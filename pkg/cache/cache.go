// Package cache provides a small string cache backed by redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/JaimeStill/palette/pkg/lifecycle"
)

// System stores string values under namespaced keys with a fixed TTL.
type System interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value for the configured TTL.
	Set(ctx context.Context, key, value string) error
	// Start registers a ping on startup and client close on shutdown.
	Start(lc *lifecycle.Coordinator) error
}

type redisCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a redis-backed cache. No connection is made until Start runs.
func New(cfg *Config, logger *slog.Logger) System {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeoutDuration(),
	})

	return &redisCache{
		rdb:    rdb,
		prefix: cfg.Prefix,
		ttl:    cfg.TTLDuration(),
		logger: logger.With("system", "cache"),
	}
}

func (c *redisCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, c.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("cache", func(ctx context.Context) error {
		if err := c.rdb.Ping(ctx).Err(); err != nil {
			c.logger.Error("redis ping failed", "error", err)
			return fmt.Errorf("redis ping: %w", err)
		}
		return nil
	})

	lc.OnShutdown(func() {
		if err := c.rdb.Close(); err != nil {
			c.logger.Error("redis close failed", "error", err)
		}
	})

	return nil
}

// Package cache holds the Redis client and the short-lived stores built on
// it, with in-process fallbacks for running without Redis.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/studylog-engine/internal/config"
)

// NewRedisClient opens a pool sized by cfg and pings it once. Every
// operation is bounded by IOTimeout so a stalled Redis degrades the cache
// and the rate limiter instead of hanging requests.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.IOTimeout,
		WriteTimeout: cfg.IOTimeout,
	}
	rdb := redis.NewClient(opts)

	// Zero durations select go-redis defaults; the ping still gets a bound.
	pingTimeout := opts.DialTimeout + opts.ReadTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s (db %d): %w", opts.Addr, opts.DB, err)
	}

	log.Printf("[CACHE] Connected to redis %s (db %d, pool %d)", opts.Addr, opts.DB, opts.PoolSize)
	return rdb, nil
}

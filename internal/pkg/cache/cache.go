package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/PayBridge/internal/pkg/config"
)

// SetupCache connects to the Redis-compatible cache server. It returns nil when no
// cache is configured or the server does not answer, and callers fall back to
// in-process behaviour.
func SetupCache(cfg config.CacheConfig) *redis.Client {
	if !cfg.Enabled() {
		log.Info("[Cache] CACHE_HOST not set, running without cache")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warnf("[Cache] Could not connect to cache at %s: %v", cfg.Addr(), err)
		_ = client.Close()
		return nil
	}
	log.Infof("[Cache] Connected to cache at %s: %s", cfg.Addr(), pong)
	return client
}

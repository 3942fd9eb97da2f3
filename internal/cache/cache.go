// Package cache stores generated portfolios in Redis so repeat generations
// with identical inputs skip the expensive path. The cache is optional: with
// no Redis configured every lookup is a miss and writes are no-ops.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type PortfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr disables caching.
func New(addr, password string, ttl time.Duration) *PortfolioCache {
	if addr == "" {
		return &PortfolioCache{ttl: ttl}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &PortfolioCache{client: client, ttl: ttl}
}

// Key derives the cache key from everything that determines the output:
// the user prompt, the resume content, and the target stack.
func Key(prompt, resumeJSON, stack string) string {
	h := sha256.Sum256([]byte(prompt + "\x00" + resumeJSON + "\x00" + stack))
	return "portfolio:" + hex.EncodeToString(h[:])
}

// Get returns the cached file map, or nil on miss. Redis errors count as
// misses so a broken cache never blocks generation.
func (c *PortfolioCache) Get(ctx context.Context, key string) map[string]string {
	if c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil
	}

	var files map[string]string
	if err := json.Unmarshal(raw, &files); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt, discarding")
		return nil
	}
	return files
}

// Set stores the file map under key for the configured TTL
func (c *PortfolioCache) Set(ctx context.Context, key string, files map[string]string) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(files)
	if err != nil {
		log.Warn().Err(err).Msg("Cache serialize failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the Redis connection
func (c *PortfolioCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Package cache provides a Redis-backed cache of ranked search results.
// Concurrent identical queries are collapsed with singleflight so the
// engine computes each distinct query once per TTL window.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"websearch/internal/search"
	"websearch/pkg/config"
	"websearch/pkg/logger"
	pkgredis "websearch/pkg/redis"
)

const keyPrefix = "search:"

// QueryCache stores ranked result lists keyed by the raw query string and
// scoring algorithm.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: logger.WithComponent("query-cache"),
	}
}

// Get looks up cached results. A Redis failure is treated as a miss, never
// an error: the cache is best-effort.
func (c *QueryCache) Get(ctx context.Context, rawQuery, algorithm string) ([]search.Result, bool) {
	key := c.buildKey(rawQuery, algorithm)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var results []search.Result
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", rawQuery, "key", key)
	return results, true
}

// Set stores results with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, rawQuery, algorithm string, results []search.Result) {
	key := c.buildKey(rawQuery, algorithm)
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns cached results when present, otherwise runs
// computeFn exactly once per key across concurrent callers and caches the
// outcome. The bool reports whether the result came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	rawQuery, algorithm string,
	computeFn func() ([]search.Result, error),
) ([]search.Result, bool, error) {
	if results, ok := c.Get(ctx, rawQuery, algorithm); ok {
		return results, true, nil
	}
	key := c.buildKey(rawQuery, algorithm)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if results, ok := c.Get(ctx, rawQuery, algorithm); ok {
			return results, nil
		}
		results, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, rawQuery, algorithm, results)
		return results, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]search.Result), false, nil
}

// Invalidate removes every cached result list.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns lifetime hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the raw query and algorithm; the raw query is already the
// canonical wire form, so no further normalisation is applied.
func (c *QueryCache) buildKey(rawQuery, algorithm string) string {
	raw := fmt.Sprintf("%s|algorithm=%s", rawQuery, algorithm)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// Package cache adds an optional redis-backed cache of search outcomes in
// front of the searcher. Concurrent identical queries are collapsed with
// singleflight so the index is only consulted once per key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/minisearch/minisearch/internal/searcher"
	"github.com/minisearch/minisearch/pkg/config"
	"github.com/minisearch/minisearch/pkg/logger"
	pkgredis "github.com/minisearch/minisearch/pkg/redis"
)

const keyPrefix = "search:"

// QueryCache caches serialized outcomes keyed by normalized query text.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a QueryCache over an established redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: logger.WithComponent("query-cache"),
	}
}

// Get returns the cached outcome for query, if present.
func (c *QueryCache) Get(ctx context.Context, query string) (*searcher.Outcome, bool) {
	key := c.buildKey(query)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var outcome searcher.Outcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", query, "key", key)
	return &outcome, true
}

// Set stores an outcome under the normalized query key with the configured
// TTL.
func (c *QueryCache) Set(ctx context.Context, query string, outcome *searcher.Outcome) {
	key := c.buildKey(query)
	data, err := json.Marshal(outcome)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached outcome or computes, stores, and returns a
// fresh one. The boolean reports whether the value came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	computeFn func() *searcher.Outcome,
) (*searcher.Outcome, bool) {
	if outcome, ok := c.Get(ctx, query); ok {
		return outcome, true
	}
	key := c.buildKey(query)
	val, _, _ := c.group.Do(key, func() (interface{}, error) {
		if outcome, ok := c.Get(ctx, query); ok {
			return outcome, nil
		}
		outcome := computeFn()
		c.Set(ctx, query, outcome)
		return outcome, nil
	})
	return val.(*searcher.Outcome), false
}

// Invalidate removes all cached search outcomes.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	pattern := keyPrefix + "*"
	deleted, err := c.client.FlushByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(query string) string {
	hash := sha256.Sum256([]byte(normalizeQuery(query)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// normalizeQuery folds case and word order so that permutations of the same
// bag of words share a cache entry. AND semantics make word order
// irrelevant to the outcome apart from the echoed query string.
func normalizeQuery(query string) string {
	words := strings.Fields(strings.ToLower(query))
	sort.Strings(words)
	return strings.Join(words, " ")
}

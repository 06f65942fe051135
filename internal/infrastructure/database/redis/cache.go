package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cortexmed/clinextract/internal/infrastructure/candcache"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

const defaultCandidateTTL = 15 * time.Minute

// CandidateCache is the Redis-backed candcache.Cache. Failures degrade to
// cache misses so a broken Redis never fails an extraction.
type CandidateCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
}

var _ candcache.Cache = (*CandidateCache)(nil)

// CacheOption customises a CandidateCache.
type CacheOption func(*CandidateCache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) CacheOption {
	return func(c *CandidateCache) { c.prefix = prefix }
}

// WithTTL overrides the entry TTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CandidateCache) { c.ttl = ttl }
}

// NewCandidateCache builds a Redis-backed candidate cache.
func NewCandidateCache(client *Client, log logging.Logger, opts ...CacheOption) *CandidateCache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &CandidateCache{
		client: client,
		logger: log,
		prefix: "clinex:cand:",
		ttl:    defaultCandidateTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CandidateCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by +/-10% so a burst of writes does not
// expire as one thundering herd.
func (c *CandidateCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

// Get returns the cached candidates for key, or a miss.
func (c *CandidateCache) Get(ctx context.Context, key string) ([]clinical.ConceptCandidate, bool) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("candidate cache get failed", logging.String("key", key), logging.Err(err))
		}
		return nil, false
	}

	var candidates []clinical.ConceptCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		c.logger.Warn("candidate cache entry corrupt, dropping",
			logging.String("key", key), logging.Err(err))
		c.client.Del(ctx, c.fullKey(key))
		return nil, false
	}
	return candidates, true
}

// Set stores candidates under key. Errors are logged, not returned.
func (c *CandidateCache) Set(ctx context.Context, key string, candidates []clinical.ConceptCandidate) {
	data, err := json.Marshal(candidates)
	if err != nil {
		c.logger.Warn("candidate cache marshal failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.jitterTTL(c.ttl)).Err(); err != nil {
		c.logger.Debug("candidate cache set failed", logging.String("key", key), logging.Err(err))
	}
}

// Flush removes all candidate entries under the cache prefix.
func (c *CandidateCache) Flush(ctx context.Context) error {
	// SCAN in batches rather than KEYS to avoid blocking the server.
	var cursor uint64
	for {
		keys, next, err := c.client.rdb.Scan(ctx, cursor, c.prefix+"*", 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

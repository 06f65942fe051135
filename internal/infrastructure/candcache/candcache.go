// Package candcache caches ranked concept candidates keyed by normalized
// term and domain, so repeated mentions of the same surface form skip the
// vocabulary search.
package candcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Cache is the candidate cache contract. Implementations must treat lookup
// failures as misses; a broken cache never fails an extraction.
type Cache interface {
	Get(ctx context.Context, key string) ([]clinical.ConceptCandidate, bool)
	Set(ctx context.Context, key string, candidates []clinical.ConceptCandidate)
	Flush(ctx context.Context) error
}

// Key builds the cache key for a normalized term within a domain.
func Key(term string, domain clinical.Domain) string {
	return string(domain) + "|" + term
}

// Memory is an in-process Cache backed by an expiring map. It is the default
// when Redis is not configured.
type Memory struct {
	store *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory builds an in-process cache. Entries expire after defaultTTL and
// are swept at twice that interval.
func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	return &Memory{store: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Get returns the cached candidates for key.
func (m *Memory) Get(_ context.Context, key string) ([]clinical.ConceptCandidate, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	candidates, ok := v.([]clinical.ConceptCandidate)
	return candidates, ok
}

// Set stores candidates under key with the default TTL.
func (m *Memory) Set(_ context.Context, key string, candidates []clinical.ConceptCandidate) {
	m.store.SetDefault(key, candidates)
}

// Flush discards all cached entries.
func (m *Memory) Flush(_ context.Context) error {
	m.store.Flush()
	return nil
}

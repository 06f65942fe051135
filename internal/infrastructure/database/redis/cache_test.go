package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexmed/clinextract/internal/config"
	"github.com/cortexmed/clinextract/internal/infrastructure/candcache"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

func testCandidates() []clinical.ConceptCandidate {
	return []clinical.ConceptCandidate{
		{
			ConceptID:    "84114007",
			ConceptName:  "heart failure",
			VocabularyID: clinical.VocabSNOMED,
			Score:        1.0,
			Method:       clinical.MatchExact,
			Rank:         1,
		},
	}
}

func newTestCache(t *testing.T) (*CandidateCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewCandidateCache(client, logging.NewNopLogger(), WithTTL(time.Minute)), mr
}

func TestCandidateCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := candcache.Key("heart failure", clinical.DomainCondition)
	cache.Set(ctx, key, testCandidates())

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "84114007", got[0].ConceptID)
	assert.Equal(t, clinical.VocabSNOMED, got[0].VocabularyID)
}

func TestCandidateCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)
	_, ok := cache.Get(context.Background(), "condition|absent")
	assert.False(t, ok)
}

func TestCandidateCache_CorruptEntryDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("clinex:cand:bad", "{not json"))
	_, ok := cache.Get(ctx, "bad")
	assert.False(t, ok)
	// Corrupt entry is evicted so the next write is clean.
	assert.False(t, mr.Exists("clinex:cand:bad"))
}

func TestCandidateCache_Flush(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "condition|a", testCandidates())
	cache.Set(ctx, "condition|b", testCandidates())
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, cache.Flush(ctx))
	assert.False(t, mr.Exists("clinex:cand:condition|a"))
	assert.False(t, mr.Exists("clinex:cand:condition|b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestCandidateCache_RedisDownDegradesToMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewClientWithRedis(db, logging.NewNopLogger())
	cache := NewCandidateCache(client, logging.NewNopLogger())

	mock.ExpectGet("clinex:cand:condition|x").SetErr(assert.AnError)
	_, ok := cache.Get(context.Background(), "condition|x")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryCache_SetGetFlush(t *testing.T) {
	cache := candcache.NewMemory(time.Minute)
	ctx := context.Background()

	key := candcache.Key("hf", clinical.DomainCondition)
	cache.Set(ctx, key, testCandidates())

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "84114007", got[0].ConceptID)

	require.NoError(t, cache.Flush(ctx))
	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestCandidateCache_RoundTripPreservesOrder(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cands := []clinical.ConceptCandidate{
		{ConceptID: "1", ConceptName: "a", VocabularyID: clinical.VocabSNOMED, Score: 0.9, Method: clinical.MatchFuzzy, Rank: 1},
		{ConceptID: "2", ConceptName: "b", VocabularyID: clinical.VocabICD10CM, Score: 0.8, Method: clinical.MatchFuzzy, Rank: 2},
	}
	cache.Set(ctx, "condition|ordered", cands)
	got, ok := cache.Get(ctx, "condition|ordered")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 2, got[1].Rank)
}

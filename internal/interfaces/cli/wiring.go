package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/cortexmed/clinextract/internal/config"
	"github.com/cortexmed/clinextract/internal/engine/lexicon"
	"github.com/cortexmed/clinextract/internal/engine/spanner"
	"github.com/cortexmed/clinextract/internal/infrastructure/candcache"
	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres"
	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres/repositories"
	"github.com/cortexmed/clinextract/internal/infrastructure/database/redis"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/prometheus"
	"github.com/cortexmed/clinextract/internal/infrastructure/vocabsource"
	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
)

// reloadLockKey serializes vocabulary reloads across processes.
const reloadLockKey = "clinex:lock:vocab-reload"

// buildLexiconProvider returns the trigger lexicon: the directory from
// configuration when set, the built-in tables otherwise.  With watch enabled
// the directory is reloaded on change for as long as ctx lives.
func buildLexiconProvider(ctx context.Context, cfg *config.Config, logger logging.Logger) (spanner.LexiconProvider, error) {
	if cfg.Lexicon.Dir == "" {
		return spanner.Static{Lexicon: lexicon.Default()}, nil
	}
	store, err := lexicon.NewStoreFromDir(cfg.Lexicon.Dir, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Lexicon.Watch {
		if err := store.Watch(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// buildVocabSource resolves the configured vocabulary source.  The returned
// cleanup closes any backing connection and is never nil.
func buildVocabSource(ctx context.Context, cfg *config.Config, logger logging.Logger) (vocab.Source, func(), error) {
	noop := func() {}
	switch cfg.Vocabulary.Source {
	case config.VocabSourceFile:
		return vocabsource.NewFileSource(cfg.Vocabulary.Path), noop, nil
	case config.VocabSourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, err
		}
		repo := repositories.NewVocabularyRepository(conn.Pool(), logger)
		return vocabsource.NewPostgresSource(repo), conn.Close, nil
	default:
		return vocabsource.NewBuiltinSource(), noop, nil
	}
}

// buildVocabStore loads the vocabulary index from the configured source.
func buildVocabStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (*vocab.Store, func(), error) {
	source, cleanup, err := buildVocabSource(ctx, cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}
	store := vocab.NewStore(source, logger)
	if err := store.Load(ctx); err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return store, cleanup, nil
}

// buildCandidateCache returns the shared Redis cache when enabled, an
// in-process cache otherwise.  The cleanup closes the Redis client.
func buildCandidateCache(cfg *config.Config, logger logging.Logger) (candcache.Cache, func()) {
	if !cfg.Redis.Enabled {
		return candcache.NewMemory(cfg.Redis.TTL), func() {}
	}
	client, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-process cache", logging.Err(err))
		return candcache.NewMemory(cfg.Redis.TTL), func() {}
	}
	cache := redis.NewCandidateCache(client, logger, redis.WithTTL(cfg.Redis.TTL))
	return cache, func() { _ = client.Close() }
}

// buildMetrics registers the pipeline metrics and, when an address is
// configured, serves them over HTTP.  The cleanup stops the server.
func buildMetrics(cfg *config.Config, logger logging.Logger) (*prometheus.AppMetrics, func(), error) {
	if !cfg.Metrics.Enabled {
		return prometheus.NopAppMetrics(), func() {}, nil
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "clinextract",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return nil, func() {}, err
	}
	metrics := prometheus.NewAppMetrics(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", logging.Err(err))
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return metrics, stop, nil
}

// acquireReloadLock takes the cross-process vocabulary reload lock when Redis
// is enabled.  Without Redis there is nothing to coordinate with and the
// release func is a no-op.
func acquireReloadLock(ctx context.Context, cfg *config.Config, logger logging.Logger) (func(), error) {
	if !cfg.Redis.Enabled {
		return func() {}, nil
	}
	client, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	lock := redis.NewReloadLock(client, reloadLockKey, 30*time.Second, logger)
	ok, err := lock.TryAcquire(ctx)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if !ok {
		_ = client.Close()
		return nil, apperrors.Conflict("another vocabulary reload is in progress")
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil {
			logger.Warn("failed to release reload lock", logging.Err(err))
		}
		_ = client.Close()
	}, nil
}

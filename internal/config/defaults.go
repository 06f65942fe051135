// Package config provides configuration loading, defaults, and validation for
// the clinextract engine.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "clinextract"
	DefaultDBMaxConns = 10

	// DefaultMigrationPath is a golang-migrate source URL.
	DefaultMigrationPath = "file://migrations"

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisTTL  = 15 * time.Minute

	DefaultVocabularySource = "builtin"

	DefaultEngineTimeout    = 10 * time.Second
	DefaultMaxDocumentBytes = 1 << 20
	DefaultMinTermLength    = 3
	DefaultMinOverlap       = 0.5
	DefaultAgreementBonus   = 0.05

	DefaultMaxScopeChars          = 50
	DefaultPrecedingContextChars  = 30
	DefaultLateralityWindowTokens = 5

	DefaultTopK           = 5
	DefaultMinFuzzyScore  = 0.4
	DefaultExactThreshold = 0.95

	DefaultWorkerConcurrency = 4

	DefaultMetricsAddr = ":9090"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = DefaultMigrationPath
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = DefaultRedisTTL
	}
	// DB is an int; 0 is a valid explicit value and also the default, so it is
	// left as-is.

	// ── Vocabulary ────────────────────────────────────────────────────────────
	if cfg.Vocabulary.Source == "" {
		cfg.Vocabulary.Source = DefaultVocabularySource
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.Timeout == 0 {
		cfg.Engine.Timeout = DefaultEngineTimeout
	}
	if cfg.Engine.MaxDocumentBytes == 0 {
		cfg.Engine.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	if cfg.Engine.MinTermLength == 0 {
		cfg.Engine.MinTermLength = DefaultMinTermLength
	}
	if cfg.Engine.MinOverlap == 0 {
		cfg.Engine.MinOverlap = DefaultMinOverlap
	}
	if cfg.Engine.AgreementBonus == 0 {
		cfg.Engine.AgreementBonus = DefaultAgreementBonus
	}
	if cfg.Engine.MaxScopeChars == 0 {
		cfg.Engine.MaxScopeChars = DefaultMaxScopeChars
	}
	if cfg.Engine.PrecedingContextChars == 0 {
		cfg.Engine.PrecedingContextChars = DefaultPrecedingContextChars
	}
	if cfg.Engine.LateralityWindowTokens == 0 {
		cfg.Engine.LateralityWindowTokens = DefaultLateralityWindowTokens
	}

	// ── Rank ──────────────────────────────────────────────────────────────────
	if cfg.Rank.TopK == 0 {
		cfg.Rank.TopK = DefaultTopK
	}
	if cfg.Rank.MinFuzzyScore == 0 {
		cfg.Rank.MinFuzzyScore = DefaultMinFuzzyScore
	}
	if cfg.Rank.ExactThreshold == 0 {
		cfg.Rank.ExactThreshold = DefaultExactThreshold
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

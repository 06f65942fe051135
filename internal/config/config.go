// Package config defines all configuration structures for clinextract.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// DatabaseConfig holds PostgreSQL connection parameters. The database is only
// required when the vocabulary source is "postgres".
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// DSN renders the parameters as a pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL renders the parameters as a postgres:// URL, the form golang-migrate
// expects.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis parameters for the concept-candidate cache.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LexiconConfig controls where surface-form lexicons come from. When Dir is
// empty the built-in lexicon is used. Watch enables hot reload of lexicon
// files on change.
type LexiconConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// Supported vocabulary sources.
const (
	VocabSourceBuiltin  = "builtin"
	VocabSourceFile     = "file"
	VocabSourcePostgres = "postgres"
)

// VocabularyConfig selects the concept vocabulary source.
type VocabularyConfig struct {
	Source string `mapstructure:"source"` // "builtin" | "file" | "postgres"
	Path   string `mapstructure:"path"`   // JSON vocabulary file for the "file" source
}

// EngineConfig tunes the extraction pipeline.
type EngineConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxDocumentBytes int           `mapstructure:"max_document_bytes"`

	MinTermLength  int     `mapstructure:"min_term_length"`
	MinOverlap     float64 `mapstructure:"min_overlap"`
	AgreementBonus float64 `mapstructure:"agreement_bonus"`

	MaxScopeChars          int `mapstructure:"max_scope_chars"`
	PrecedingContextChars  int `mapstructure:"preceding_context_chars"`
	LateralityWindowTokens int `mapstructure:"laterality_window_tokens"`
}

// RankConfig tunes concept-candidate ranking.
type RankConfig struct {
	TopK           int     `mapstructure:"top_k"`
	MinFuzzyScore  float64 `mapstructure:"min_fuzzy_score"`
	ExactThreshold float64 `mapstructure:"exact_threshold"`
}

// WorkerConfig bounds concurrency for batch extraction.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// MetricsConfig controls the Prometheus scrape endpoint exposed during
// long-running batch jobs.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// LogConfig holds logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// ─────────────────────────────────────────────────────────────────────────────
// Root config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration shared by all clinextract binaries.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Lexicon    LexiconConfig    `mapstructure:"lexicon"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Rank       RankConfig       `mapstructure:"rank"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

// Validate checks the configuration for internal consistency. It must be
// called after ApplyDefaults so that unset-but-defaulted fields do not fail.
func (c *Config) Validate() error {
	switch c.Vocabulary.Source {
	case VocabSourceBuiltin, VocabSourceFile, VocabSourcePostgres:
	default:
		return fmt.Errorf("vocabulary.source must be one of builtin, file, postgres; got %q", c.Vocabulary.Source)
	}
	if c.Vocabulary.Source == VocabSourceFile && c.Vocabulary.Path == "" {
		return fmt.Errorf("vocabulary.path is required when vocabulary.source is %q", VocabSourceFile)
	}
	if c.Vocabulary.Source == VocabSourcePostgres {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required when vocabulary.source is %q", VocabSourcePostgres)
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port must be in (0, 65535]; got %d", c.Database.Port)
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database.db_name is required when vocabulary.source is %q", VocabSourcePostgres)
		}
	}

	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("engine.timeout must be positive; got %s", c.Engine.Timeout)
	}
	if c.Engine.MaxDocumentBytes <= 0 {
		return fmt.Errorf("engine.max_document_bytes must be positive; got %d", c.Engine.MaxDocumentBytes)
	}
	if c.Engine.MinOverlap <= 0 || c.Engine.MinOverlap > 1 {
		return fmt.Errorf("engine.min_overlap must be in (0, 1]; got %g", c.Engine.MinOverlap)
	}
	if c.Engine.AgreementBonus < 0 {
		return fmt.Errorf("engine.agreement_bonus must be non-negative; got %g", c.Engine.AgreementBonus)
	}

	if c.Rank.TopK <= 0 {
		return fmt.Errorf("rank.top_k must be positive; got %d", c.Rank.TopK)
	}
	if c.Rank.MinFuzzyScore < 0 || c.Rank.MinFuzzyScore > 1 {
		return fmt.Errorf("rank.min_fuzzy_score must be in [0, 1]; got %g", c.Rank.MinFuzzyScore)
	}
	if c.Rank.ExactThreshold < c.Rank.MinFuzzyScore || c.Rank.ExactThreshold > 1 {
		return fmt.Errorf("rank.exact_threshold must be in [min_fuzzy_score, 1]; got %g", c.Rank.ExactThreshold)
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker.concurrency must be positive; got %d", c.Worker.Concurrency)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be one of json, console; got %q", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}

	return nil
}

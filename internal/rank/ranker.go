// Package rank maps mentions to ranked vocabulary concept candidates.
package rank

import (
	"context"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Config holds ranking parameters.
type Config struct {
	// TopK is the maximum number of candidates per mention.
	TopK int `json:"top_k" yaml:"top_k"`

	// MinFuzzyScore is the floor below which fuzzy matches are discarded.
	MinFuzzyScore float64 `json:"min_fuzzy_score" yaml:"min_fuzzy_score"`

	// ExactThreshold is the similarity at or above which a match is reported
	// as exact even when it came from the fuzzy path.
	ExactThreshold float64 `json:"exact_threshold" yaml:"exact_threshold"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{TopK: 5, MinFuzzyScore: 0.4, ExactThreshold: 0.95}
}

// IndexProvider yields the live vocabulary index.  *vocab.Store satisfies it.
type IndexProvider interface {
	Current() (*vocab.Index, error)
}

// Ranker maps mentions to concept candidates.  Safe for concurrent use.
type Ranker struct {
	cfg      Config
	provider IndexProvider
	logger   logging.Logger
}

// New constructs a Ranker.  provider must not be nil.
func New(cfg Config, provider IndexProvider, logger logging.Logger) (*Ranker, error) {
	if provider == nil {
		return nil, apperrors.InvalidParam("index provider is required")
	}
	def := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MinFuzzyScore <= 0 || cfg.MinFuzzyScore > 1 {
		cfg.MinFuzzyScore = def.MinFuzzyScore
	}
	if cfg.ExactThreshold <= 0 || cfg.ExactThreshold > 1 {
		cfg.ExactThreshold = def.ExactThreshold
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Ranker{cfg: cfg, provider: provider, logger: logger.Named("rank")}, nil
}

// Candidates returns the ranked concept candidates for one mention against
// the given index.  A mention whose variant matches nothing yields an empty
// slice, never an error.
func (r *Ranker) Candidates(ix *vocab.Index, m *clinical.Mention) []clinical.ConceptCandidate {
	term := m.LexicalVariant
	if term == "" {
		term = m.Text
	}

	matches := ix.Search(term, m.Domain, r.cfg.MinFuzzyScore, r.cfg.TopK)
	if len(matches) == 0 && m.Domain != "" {
		// Cross-domain fallback: a drug mention naming a lab analyte, or a
		// finding indexed under conditions, still deserves candidates.
		matches = ix.Search(term, "", r.cfg.MinFuzzyScore, r.cfg.TopK)
	}
	if len(matches) == 0 {
		return []clinical.ConceptCandidate{}
	}

	out := make([]clinical.ConceptCandidate, 0, len(matches))
	for i, match := range matches {
		method := match.Method
		if match.Score >= r.cfg.ExactThreshold {
			method = clinical.MatchExact
		}
		out = append(out, clinical.ConceptCandidate{
			MentionID:    m.ID,
			ConceptID:    match.Entry.ConceptID,
			ConceptName:  match.Entry.ConceptName,
			VocabularyID: match.Entry.VocabularyID,
			DomainID:     match.Entry.DomainID,
			Score:        match.Score,
			Method:       method,
			Rank:         i + 1,
		})
	}
	return out
}

// MapMentions maps every mention to its candidates.  The vocabulary being
// unavailable is returned as a typed error so the caller can degrade to
// unmapped mentions; context cancellation fails the whole call.
func (r *Ranker) MapMentions(ctx context.Context, mentions []clinical.Mention) (map[clinical.MentionID][]clinical.ConceptCandidate, error) {
	ix, err := r.provider.Current()
	if err != nil {
		return nil, err
	}

	out := make(map[clinical.MentionID][]clinical.ConceptCandidate, len(mentions))
	for i := range mentions {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.Timeout("concept mapping cancelled").WithCause(err)
		}
		out[mentions[i].ID] = r.Candidates(ix, &mentions[i])
	}
	return out, nil
}

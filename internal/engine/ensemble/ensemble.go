// Package ensemble merges the outputs of multiple span extractors into one
// mention stream.  Overlapping spans from different extractors are clustered
// and resolved by majority vote, with extractor priority breaking ties, so
// disagreement lowers noise instead of duplicating mentions.
package ensemble

import (
	"context"
	"sort"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Extractor is one voter in the ensemble.
type Extractor interface {
	// Name identifies the extractor in logs and votes.
	Name() string
	// Priority breaks ties between equally supported spans; lower wins.
	Priority() int
	// Extract returns the mentions found in text.  Offsets refer to text as
	// given.
	Extract(ctx context.Context, docID, text string, sections []clinical.SectionSpan) ([]clinical.Mention, error)
}

// Config holds merge parameters.
type Config struct {
	// MinOverlap is the span overlap fraction, relative to the smaller span,
	// at which two mentions are considered the same entity.
	MinOverlap float64 `json:"min_overlap" yaml:"min_overlap"`

	// AgreementBonus is added to a merged mention's confidence for each
	// additional extractor that corroborated it.
	AgreementBonus float64 `json:"agreement_bonus" yaml:"agreement_bonus"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{MinOverlap: 0.5, AgreementBonus: 0.05}
}

// Ensemble runs its extractors in order and merges their outputs.
type Ensemble struct {
	cfg        Config
	extractors []Extractor
	logger     logging.Logger
}

// New constructs an Ensemble.  At least one extractor is required.
func New(cfg Config, extractors []Extractor, logger logging.Logger) (*Ensemble, error) {
	if len(extractors) == 0 {
		return nil, apperrors.InvalidParam("at least one extractor is required")
	}
	if cfg.MinOverlap <= 0 || cfg.MinOverlap > 1 {
		cfg.MinOverlap = DefaultConfig().MinOverlap
	}
	if cfg.AgreementBonus < 0 {
		cfg.AgreementBonus = 0
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Ensemble{cfg: cfg, extractors: extractors, logger: logger.Named("ensemble")}, nil
}

// sourced tags a mention with the extractor that produced it.
type sourced struct {
	mention  clinical.Mention
	source   string
	priority int
}

// Extract runs every extractor and merges the results.  An error from any
// extractor fails the whole call; partial output is never returned.
func (e *Ensemble) Extract(ctx context.Context, docID, text string, sections []clinical.SectionSpan) ([]clinical.Mention, error) {
	var all []sourced
	for _, ex := range e.extractors {
		mentions, err := ex.Extract(ctx, docID, text, sections)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeUnknown, "extractor "+ex.Name()+" failed")
		}
		for _, m := range mentions {
			all = append(all, sourced{mention: m, source: ex.Name(), priority: ex.Priority()})
		}
	}
	return e.merge(all), nil
}

// merge clusters overlapping mentions and resolves each cluster to a single
// mention.
func (e *Ensemble) merge(all []sourced) []clinical.Mention {
	if len(all) == 0 {
		return nil
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := &all[i].mention, &all[j].mention
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		if a.EndOffset != b.EndOffset {
			return a.EndOffset > b.EndOffset
		}
		return all[i].priority < all[j].priority
	})

	var out []clinical.Mention
	cluster := []sourced{all[0]}
	for _, s := range all[1:] {
		if e.belongs(cluster, &s.mention) {
			cluster = append(cluster, s)
			continue
		}
		out = append(out, e.resolve(cluster))
		cluster = []sourced{s}
	}
	out = append(out, e.resolve(cluster))
	return out
}

// belongs reports whether the mention overlaps any cluster member by at
// least MinOverlap.
func (e *Ensemble) belongs(cluster []sourced, m *clinical.Mention) bool {
	for i := range cluster {
		if cluster[i].mention.OverlapFraction(m) >= e.cfg.MinOverlap {
			return true
		}
	}
	return false
}

// resolve reduces a cluster to one mention.  The domain claimed by the most
// members wins; within the winning domain the member from the
// lowest-priority-number extractor is the representative.  The assertion,
// temporality, and experiencer axes are likewise majority-voted over the
// members that supplied them; members that left an axis unset abstain, and
// a cluster with no votes on an axis leaves it unset for the downstream
// context classification pass.  Confidence is the mean over the winning
// domain's members plus the agreement bonus for each additional distinct
// extractor in the cluster, capped at 1.
func (e *Ensemble) resolve(cluster []sourced) clinical.Mention {
	votes := make(map[clinical.Domain]int)
	for i := range cluster {
		votes[cluster[i].mention.Domain]++
	}
	winner := cluster[0].mention.Domain
	for domain, n := range votes {
		switch {
		case n > votes[winner]:
			winner = domain
		case n == votes[winner] && domain != winner:
			// Deterministic tie-break on the best-priority member holding
			// each domain.
			if bestPriority(cluster, domain) < bestPriority(cluster, winner) {
				winner = domain
			}
		}
	}

	var rep *sourced
	var sum float64
	members := 0
	for i := range cluster {
		if cluster[i].mention.Domain != winner {
			continue
		}
		sum += cluster[i].mention.Confidence
		members++
		if rep == nil || better(&cluster[i], rep) {
			rep = &cluster[i]
		}
	}

	m := rep.mention
	if v, ok := voteAxis(cluster, func(m *clinical.Mention) clinical.Assertion { return m.Assertion }); ok {
		m.Assertion = v
	}
	if v, ok := voteAxis(cluster, func(m *clinical.Mention) clinical.Temporality { return m.Temporality }); ok {
		m.Temporality = v
	}
	if v, ok := voteAxis(cluster, func(m *clinical.Mention) clinical.Experiencer { return m.Experiencer }); ok {
		m.Experiencer = v
	}
	m.Confidence = sum / float64(members)
	if n := distinctSources(cluster); n > 1 {
		m.Confidence += e.cfg.AgreementBonus * float64(n-1)
	}
	if m.Confidence > 1 {
		m.Confidence = 1
	}
	return m
}

// voteAxis returns the majority non-empty value of one classification axis.
// Ties break on the best extractor priority among the holders of each value,
// then on the value itself, so the outcome never depends on map order.
func voteAxis[T ~string](cluster []sourced, get func(*clinical.Mention) T) (T, bool) {
	votes := make(map[T]int)
	var winner T
	for i := range cluster {
		v := get(&cluster[i].mention)
		if v == "" {
			continue
		}
		if len(votes) == 0 {
			winner = v
		}
		votes[v]++
	}
	if len(votes) == 0 {
		return winner, false
	}
	for v, n := range votes {
		switch {
		case n > votes[winner]:
			winner = v
		case n == votes[winner] && v != winner:
			pv, pw := bestAxisPriority(cluster, get, v), bestAxisPriority(cluster, get, winner)
			if pv < pw || (pv == pw && v < winner) {
				winner = v
			}
		}
	}
	return winner, true
}

func bestAxisPriority[T ~string](cluster []sourced, get func(*clinical.Mention) T, v T) int {
	best := int(^uint(0) >> 1)
	for i := range cluster {
		if get(&cluster[i].mention) == v && cluster[i].priority < best {
			best = cluster[i].priority
		}
	}
	return best
}

func better(a, b *sourced) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.mention.Length() > b.mention.Length()
}

func bestPriority(cluster []sourced, domain clinical.Domain) int {
	best := int(^uint(0) >> 1)
	for i := range cluster {
		if cluster[i].mention.Domain == domain && cluster[i].priority < best {
			best = cluster[i].priority
		}
	}
	return best
}

func distinctSources(cluster []sourced) int {
	seen := make(map[string]struct{}, len(cluster))
	for i := range cluster {
		seen[cluster[i].source] = struct{}{}
	}
	return len(seen)
}

// Package spanner extracts clinical entity mentions from note text by
// greedy longest-match against the lexicon, with abbreviation sense
// disambiguation and compound phrase decomposition.
package spanner

import (
	"context"
	"strings"
	"unicode"

	"github.com/cortexmed/clinextract/internal/engine/contextual"
	"github.com/cortexmed/clinextract/internal/engine/lexicon"
	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Confidence is a weighted sum of match signals, then scaled by the section
// fit modifier.
const (
	weightBase        = 0.4
	weightTermLength  = 0.2
	weightSectionFit  = 0.2
	weightSpecificity = 0.1
	weightCaseMatch   = 0.1

	// minConfidence floors the score after abbreviation and compound
	// penalties so a resolved mention is never discarded outright.
	minConfidence = 0.3
)

// LexiconProvider yields the lexicon snapshot to match against.  Both
// *lexicon.Store and Static satisfy it.
type LexiconProvider interface {
	Current() *lexicon.Lexicon
}

// Static adapts a fixed Lexicon to the LexiconProvider interface.
type Static struct{ Lexicon *lexicon.Lexicon }

func (s Static) Current() *lexicon.Lexicon { return s.Lexicon }

// Config holds tuneable extraction parameters.
type Config struct {
	// MinTermLength is the minimum byte length for a single-token match.
	// Shorter tokens are considered only when the disambiguator or compound
	// tables know them.
	MinTermLength int `json:"min_term_length" yaml:"min_term_length"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{MinTermLength: 3}
}

// Extractor is the lexicon-driven span extractor.  It is safe for concurrent
// use; the lexicon snapshot is taken once per Extract call.
type Extractor struct {
	cfg      Config
	provider LexiconProvider
	disamb   *contextual.Disambiguator
	logger   logging.Logger
}

// New constructs the Extractor.  provider must not be nil.
func New(cfg Config, provider LexiconProvider, logger logging.Logger) (*Extractor, error) {
	if provider == nil {
		return nil, apperrors.InvalidParam("lexicon provider is required")
	}
	if cfg.MinTermLength <= 0 {
		cfg.MinTermLength = DefaultConfig().MinTermLength
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{
		cfg:      cfg,
		provider: provider,
		disamb:   contextual.NewDisambiguator(),
		logger:   logger.Named("spanner"),
	}, nil
}

// Name identifies the extractor in ensemble votes.
func (e *Extractor) Name() string { return "lexicon" }

// Priority breaks ensemble ties; lower wins.
func (e *Extractor) Priority() int { return 1 }

// token is a word span within the document text.
type token struct {
	start int
	end   int
}

// Extract returns the mentions found in text.  Offsets refer to text as
// given.  The assertion axes are left zero for the caller's context
// classification pass.  Empty input yields no mentions and no error.
func (e *Extractor) Extract(ctx context.Context, docID, text string, sections []clinical.SectionSpan) ([]clinical.Mention, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("extraction cancelled").WithCause(err)
	}

	lex := e.provider.Current()
	tokens := tokenize(text)
	maxWindow := lex.MaxPhraseTokens()
	if maxWindow < contextual.MaxCompoundTokens {
		maxWindow = contextual.MaxCompoundTokens
	}

	var mentions []clinical.Mention
	for i := 0; i < len(tokens); {
		window := maxWindow
		if rest := len(tokens) - i; rest < window {
			window = rest
		}

		matched := 0
		for w := window; w >= 1; w-- {
			surface := text[tokens[i].start:tokens[i+w-1].end]
			ms, ok := e.match(lex, text, surface, tokens[i].start, tokens[i+w-1].end, w, sections)
			if !ok {
				continue
			}
			for k := range ms {
				ms[k].ID = clinical.NewMentionID(docID, ms[k].StartOffset, ms[k].EndOffset, ms[k].Domain)
				ms[k].DocumentID = docID
			}
			mentions = append(mentions, ms...)
			matched = w
			break
		}
		if matched > 0 {
			i += matched
		} else {
			i++
		}
	}
	return mentions, nil
}

// match resolves one candidate surface form.  The bool reports whether the
// span is consumed; an empty slice with ok=true means the span resolved to a
// non-entity reading (e.g. "PE" as physical exam) and should be skipped.
// A surface listed under several domain tables yields one mention per
// domain, so a span can be both a finding and a condition.
func (e *Extractor) match(lex *lexicon.Lexicon, text, surface string, start, end, tokenCount int, sections []clinical.SectionSpan) ([]clinical.Mention, bool) {
	lower := strings.ToLower(surface)
	if tokenCount > 1 {
		// A phrase wrapped across a line break still matches its
		// single-spaced lexicon key.
		lower = strings.Join(strings.Fields(lower), " ")
	}
	section := sectionizer.At(sections, start)

	if tokenCount == 1 {
		if lex.IsStopword(lower) {
			return nil, false
		}
		if hits := lookupAll(lex, lower); len(hits) > 0 {
			var out []clinical.Mention
			for _, h := range hits {
				// Short tokens are taken only when the lexicon maps them to
				// a longer variant, i.e. a known abbreviation.
				if len(lower) >= e.cfg.MinTermLength || h.variant != lower {
					out = append(out, e.mention(surface, h.variant, h.domain, start, end, section, 0))
				}
			}
			if len(out) == 0 {
				return nil, false
			}
			return out, true
		}
		// Embedded compound abbreviations pack a full diagnosis into one
		// token the lexicon does not list.
		if exp, ok := contextual.ExpandCompound(lower); ok {
			return []clinical.Mention{e.mention(surface, exp.Canonical, exp.Domain, start, end, section, contextual.CompoundPenalty)}, true
		}
		if e.disamb.IsAmbiguous(lower) {
			sense, ok := e.disamb.Resolve(text, start, end)
			if !ok || sense.Expansion == "" {
				return nil, true
			}
			return []clinical.Mention{e.mention(surface, sense.Expansion, sense.Domain, start, end, section, contextual.AbbrevPenalty)}, true
		}
		return nil, false
	}

	if tokenCount > 1 {
		// Modifier-qualified phrases map onto a canonical diagnosis the
		// lexicon knows ("acute on chronic systolic heart failure").
		if canonical, ok := contextual.NormalizePhrase(lower); ok {
			if hits := lookupAll(lex, canonical); len(hits) > 0 {
				var out []clinical.Mention
				for _, h := range hits {
					out = append(out, e.mention(surface, h.variant, h.domain, start, end, section, contextual.CompoundPenalty))
				}
				return out, true
			}
			return []clinical.Mention{e.mention(surface, canonical, clinical.DomainCondition, start, end, section, contextual.CompoundPenalty)}, true
		}
	}

	if hits := lookupAll(lex, lower); len(hits) > 0 {
		var out []clinical.Mention
		for _, h := range hits {
			out = append(out, e.mention(surface, h.variant, h.domain, start, end, section, 0))
		}
		return out, true
	}
	return nil, false
}

// domainHit is one domain table containing a surface form.
type domainHit struct {
	domain  clinical.Domain
	variant string
}

// lookupAll returns every domain whose table contains the surface form.
// Domains are iterated in sorted order so the output is deterministic.
func lookupAll(lex *lexicon.Lexicon, surface string) []domainHit {
	var hits []domainHit
	for _, domain := range lex.Domains() {
		if variant, ok := lex.Lookup(domain, surface); ok {
			hits = append(hits, domainHit{domain: domain, variant: variant})
		}
	}
	return hits
}

func (e *Extractor) mention(surface, variant string, domain clinical.Domain, start, end int, section string, penalty float64) clinical.Mention {
	return clinical.Mention{
		Text:           surface,
		StartOffset:    start,
		EndOffset:      end,
		LexicalVariant: variant,
		Section:        section,
		Domain:         domain,
		Confidence:     confidence(surface, domain, section, penalty),
	}
}

// ---------------------------------------------------------------------------
// Confidence scoring
// ---------------------------------------------------------------------------

func confidence(surface string, domain clinical.Domain, section string, penalty float64) float64 {
	score := weightBase +
		weightTermLength*lengthScore(surface) +
		weightSectionFit*sectionizer.DomainAffinity(section, domain) +
		weightSpecificity*specificityScore(surface) +
		weightCaseMatch*caseScore(surface)

	score *= sectionizer.ConfidenceModifier(section, domain)
	score -= penalty

	if score > 1 {
		score = 1
	}
	if score < minConfidence {
		score = minConfidence
	}
	return score
}

// lengthScore rises with surface length; clinical terms of a dozen or more
// characters are rarely spurious.
func lengthScore(surface string) float64 {
	s := float64(len(surface)) / 12.0
	if s > 1 {
		s = 1
	}
	return s
}

// specificityScore favors multi-word phrases over bare tokens.
func specificityScore(surface string) float64 {
	if strings.ContainsAny(surface, " \t") {
		return 1.0
	}
	if len(surface) >= 6 {
		return 0.7
	}
	return 0.4
}

// caseScore penalizes odd mixed casing, which often signals a non-clinical
// token (identifiers, headings mid-parse).
func caseScore(surface string) float64 {
	lower := strings.ToLower(surface)
	upper := strings.ToUpper(surface)
	switch surface {
	case lower, upper:
		return 1.0
	}
	// Sentence-initial capitalization.
	if len(surface) > 1 && surface[1:] == lower[1:] {
		return 1.0
	}
	return 0.5
}

// tokenize splits text into letter/digit runs, byte offsets preserved.
// Clinical notes are ASCII-dominant; multibyte runes are kept inside tokens.
func tokenize(text string) []token {
	var tokens []token
	inToken := false
	start := 0
	for i, r := range text {
		wordish := unicode.IsLetter(r) || unicode.IsDigit(r)
		if wordish && !inToken {
			inToken = true
			start = i
		}
		if !wordish && inToken {
			inToken = false
			tokens = append(tokens, token{start: start, end: i})
		}
	}
	if inToken {
		tokens = append(tokens, token{start: start, end: len(text)})
	}
	return tokens
}

// Package lexicon holds the trigger tables that drive rule-based mention
// extraction: per-domain term lists with canonical lexical variants, plus the
// stopword set used to suppress noise matches.  A Lexicon is immutable after
// construction; hot reload swaps whole instances through a Store.
package lexicon

import (
	"sort"
	"strings"

	"github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// ---------------------------------------------------------------------------
// Core data structures
// ---------------------------------------------------------------------------

// Entry is one trigger term in a domain table.  Surface is the form matched
// in text; Variant is the canonical lexical variant emitted on the mention.
// An empty Variant means the surface form is already canonical.
type Entry struct {
	Surface string `yaml:"surface" json:"surface"`
	Variant string `yaml:"variant,omitempty" json:"variant,omitempty"`
}

// Table is the trigger table for a single clinical domain.
type Table struct {
	Domain  clinical.Domain `yaml:"domain" json:"domain"`
	Entries []Entry         `yaml:"entries" json:"entries"`
}

// Stats summarises a loaded lexicon for logging and the CLI.
type Stats struct {
	Domains    int `json:"domains"`
	Terms      int `json:"terms"`
	Stopwords  int `json:"stopwords"`
	MaxPhrased int `json:"max_phrase_tokens"`
}

// Lexicon is the immutable, case-folded view of all trigger tables.
type Lexicon struct {
	// terms maps domain → lowercased surface form → canonical variant.
	terms map[clinical.Domain]map[string]string
	// phrases maps domain → surface forms sorted longest-first, for greedy
	// longest-match scanning.
	phrases map[clinical.Domain][]string
	// stopwords are lowercased single tokens never emitted as mentions.
	stopwords map[string]struct{}

	maxPhraseTokens int
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// New builds a Lexicon from domain tables and a stopword list.  Every entry is
// validated; a malformed entry fails the whole build so a bad table can never
// be half-loaded.
func New(tables []Table, stopwords []string) (*Lexicon, error) {
	if len(tables) == 0 {
		return nil, errors.LexiconLoad("no trigger tables supplied")
	}

	lx := &Lexicon{
		terms:     make(map[clinical.Domain]map[string]string, len(tables)),
		phrases:   make(map[clinical.Domain][]string, len(tables)),
		stopwords: make(map[string]struct{}, len(stopwords)),
	}

	for _, tbl := range tables {
		if !tbl.Domain.IsValid() {
			return nil, errors.New(errors.ErrCodeLexiconDomainUnknown,
				"unknown domain in trigger table").WithDetail(string(tbl.Domain))
		}
		if len(tbl.Entries) == 0 {
			return nil, errors.New(errors.ErrCodeLexiconEntryInvalid,
				"empty trigger table").WithDetail(string(tbl.Domain))
		}
		domainTerms, ok := lx.terms[tbl.Domain]
		if !ok {
			domainTerms = make(map[string]string, len(tbl.Entries))
			lx.terms[tbl.Domain] = domainTerms
		}
		for _, e := range tbl.Entries {
			surface := strings.ToLower(strings.TrimSpace(e.Surface))
			if surface == "" {
				return nil, errors.New(errors.ErrCodeLexiconEntryInvalid,
					"trigger entry with empty surface form").WithDetail(string(tbl.Domain))
			}
			variant := strings.TrimSpace(e.Variant)
			if variant == "" {
				variant = surface
			}
			domainTerms[surface] = variant
			if n := len(strings.Fields(surface)); n > lx.maxPhraseTokens {
				lx.maxPhraseTokens = n
			}
		}
	}

	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lx.stopwords[w] = struct{}{}
		}
	}

	// Longest-first phrase lists give the spanner its greedy match order.
	for domain, terms := range lx.terms {
		phrases := make([]string, 0, len(terms))
		for surface := range terms {
			phrases = append(phrases, surface)
		}
		sort.Slice(phrases, func(i, j int) bool {
			if len(phrases[i]) != len(phrases[j]) {
				return len(phrases[i]) > len(phrases[j])
			}
			return phrases[i] < phrases[j]
		})
		lx.phrases[domain] = phrases
	}

	return lx, nil
}

// ---------------------------------------------------------------------------
// Lookup API
// ---------------------------------------------------------------------------

// Lookup returns the canonical variant for a surface form within a domain.
// Matching is case-insensitive.
func (lx *Lexicon) Lookup(domain clinical.Domain, surface string) (string, bool) {
	terms, ok := lx.terms[domain]
	if !ok {
		return "", false
	}
	variant, ok := terms[strings.ToLower(surface)]
	return variant, ok
}

// Phrases returns the surface forms for a domain, longest first.  The returned
// slice is shared; callers must not mutate it.
func (lx *Lexicon) Phrases(domain clinical.Domain) []string {
	return lx.phrases[domain]
}

// Domains returns the domains with at least one trigger entry, sorted for
// deterministic iteration.
func (lx *Lexicon) Domains() []clinical.Domain {
	out := make([]clinical.Domain, 0, len(lx.terms))
	for d := range lx.terms {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsStopword reports whether a token is in the stopword set.
func (lx *Lexicon) IsStopword(token string) bool {
	_, ok := lx.stopwords[strings.ToLower(token)]
	return ok
}

// MaxPhraseTokens returns the token length of the longest trigger phrase.
// The spanner uses it to bound its match window.
func (lx *Lexicon) MaxPhraseTokens() int {
	return lx.maxPhraseTokens
}

// Stats returns load statistics.
func (lx *Lexicon) Stats() Stats {
	total := 0
	for _, terms := range lx.terms {
		total += len(terms)
	}
	return Stats{
		Domains:    len(lx.terms),
		Terms:      total,
		Stopwords:  len(lx.stopwords),
		MaxPhrased: lx.maxPhraseTokens,
	}
}

// Package contextual assigns the assertion axes of a mention from its
// surrounding text: negation status, temporality, experiencer, and
// laterality.  All trigger scans are clause-scoped so that "denies chest
// pain; has fever" negates only chest pain.
package contextual

import (
	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// Config holds tuneable parameters for context classification.
type Config struct {
	// ClauseDelimiters are the hard clause terminators.  Empty means the
	// default set (";", ".", ":", newline).
	ClauseDelimiters []string `json:"clause_delimiters" yaml:"clause_delimiters"`

	// MaxScopeChars bounds how far a negation trigger's scope reaches toward
	// the mention, in bytes.
	MaxScopeChars int `json:"max_scope_chars" yaml:"max_scope_chars"`

	// PrecedingContextChars bounds the lookbehind for temporality and
	// experiencer cues, in bytes.
	PrecedingContextChars int `json:"preceding_context_chars" yaml:"preceding_context_chars"`

	// LateralityWindowTokens is the token radius scanned for a stated side.
	LateralityWindowTokens int `json:"laterality_window_tokens" yaml:"laterality_window_tokens"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		MaxScopeChars:          50,
		PrecedingContextChars:  30,
		LateralityWindowTokens: 5,
	}
}

// ---------------------------------------------------------------------------
// Classifier
// ---------------------------------------------------------------------------

// Context is the classified assertion state of one mention.
type Context struct {
	Assertion   clinical.Assertion
	Temporality clinical.Temporality
	Experiencer clinical.Experiencer
	Laterality  clinical.Laterality
}

// Classifier derives a mention's Context from the enclosing clause and
// section.  It is stateless and safe for concurrent use.
type Classifier struct {
	cfg      Config
	splitter *clauseSplitter
}

// New constructs a Classifier.  Zero-valued config fields fall back to
// defaults.
func New(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.MaxScopeChars <= 0 {
		cfg.MaxScopeChars = def.MaxScopeChars
	}
	if cfg.PrecedingContextChars <= 0 {
		cfg.PrecedingContextChars = def.PrecedingContextChars
	}
	if cfg.LateralityWindowTokens <= 0 {
		cfg.LateralityWindowTokens = def.LateralityWindowTokens
	}
	return &Classifier{
		cfg:      cfg,
		splitter: newClauseSplitter(cfg.ClauseDelimiters),
	}
}

// Classify returns the Context for the mention at [start, end) in text.
// section is the label of the enclosing section span; pass the empty string
// or "unspecified" when unknown.  Classification never fails: every axis has
// a deterministic default.
func (c *Classifier) Classify(text, section string, start, end int) Context {
	clause := c.splitter.around(text, start, end)

	return Context{
		Assertion:   c.classifyAssertion(text, clause, start, end),
		Temporality: c.classifyTemporality(text, section, clause, start),
		Experiencer: c.classifyExperiencer(text, section, clause, start),
		Laterality:  detectLaterality(text, start, end, c.cfg.LateralityWindowTokens),
	}
}

// ---------------------------------------------------------------------------
// Assertion
// ---------------------------------------------------------------------------

// classifyAssertion applies the ordered decision table: suppressed negation
// first, then pre-negation, post-negation, uncertainty, default present.
func (c *Classifier) classifyAssertion(text string, clause Clause, start, end int) clinical.Assertion {
	clauseText := text[clause.Start:clause.End]
	pseudoSpans := pseudoNegation.FindAllStringIndex(clauseText, -1)

	// Pre-trigger negation: trigger before the mention, scope reaching it.
	preText := text[clause.Start:start]
	for _, m := range preNegation.FindAllStringIndex(preText, -1) {
		if start-(clause.Start+m[1]) > c.cfg.MaxScopeChars {
			continue
		}
		if overlapsAny(m[0], m[1], pseudoSpans) {
			continue
		}
		return clinical.AssertionAbsent
	}

	// Post-trigger negation: trigger after the mention, scope reaching back.
	postOffset := end - clause.Start
	if postOffset < 0 {
		postOffset = 0
	}
	postText := clauseText[postOffset:]
	for _, m := range postNegation.FindAllStringIndex(postText, -1) {
		if m[0] > c.cfg.MaxScopeChars {
			continue
		}
		if overlapsAny(postOffset+m[0], postOffset+m[1], pseudoSpans) {
			continue
		}
		return clinical.AssertionAbsent
	}

	if uncertainty.MatchString(clauseText) {
		return clinical.AssertionPossible
	}
	return clinical.AssertionPresent
}

// overlapsAny reports whether [lo, hi) intersects any of the spans.
func overlapsAny(lo, hi int, spans [][]int) bool {
	for _, s := range spans {
		if lo < s[1] && s[0] < hi {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Temporality
// ---------------------------------------------------------------------------

func (c *Classifier) classifyTemporality(text, section string, clause Clause, start int) clinical.Temporality {
	clauseText := text[clause.Start:clause.End]
	if futureTriggers.MatchString(clauseText) {
		return clinical.TemporalityFuture
	}

	// Past cues live in the immediately preceding context; a current cue in
	// the same window overrides them ("now with recurrence of prior CHF").
	lo := start - c.cfg.PrecedingContextChars
	if lo < clause.Start {
		lo = clause.Start
	}
	preceding := text[lo:start]
	if pastTriggers.MatchString(preceding) && !currentTriggers.MatchString(preceding) {
		return clinical.TemporalityPast
	}

	switch section {
	case sectionizer.SectionPastMedicalHistory, sectionizer.SectionPastSurgicalHistory:
		return clinical.TemporalityPast
	case sectionizer.SectionFollowUp, sectionizer.SectionDischargeInstructions:
		return clinical.TemporalityFuture
	}
	return clinical.TemporalityCurrent
}

// ---------------------------------------------------------------------------
// Experiencer
// ---------------------------------------------------------------------------

func (c *Classifier) classifyExperiencer(text, section string, clause Clause, start int) clinical.Experiencer {
	if section == sectionizer.SectionFamilyHistory {
		return clinical.ExperiencerFamily
	}

	preText := text[clause.Start:start]
	if familyTriggers.MatchString(preText) {
		return clinical.ExperiencerFamily
	}
	if otherTriggers.MatchString(preText) {
		return clinical.ExperiencerOther
	}
	return clinical.ExperiencerPatient
}

// Package clinical defines the shared data model of the extraction engine:
// mentions recovered from note text, vocabulary entries, and ranked concept
// candidates.  These types cross every layer boundary, so they carry no
// behavior beyond validation and classification helpers.
package clinical

import (
	"fmt"

	"github.com/google/uuid"
)

// MentionID is a string alias for a mention identifier (UUID v5).
type MentionID string

// mentionIDNamespace scopes derived mention identifiers.
var mentionIDNamespace = uuid.MustParse("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d")

// NewMentionID derives the identifier for a mention from its identity
// fields, so repeated runs over the same document yield the same IDs.
func NewMentionID(docID string, start, end int, domain Domain) MentionID {
	name := fmt.Sprintf("%s|%d|%d|%s", docID, start, end, domain)
	return MentionID(uuid.NewSHA1(mentionIDNamespace, []byte(name)).String())
}

// Validate checks that the MentionID is a well-formed UUID.
func (id MentionID) Validate() error {
	if id == "" {
		return fmt.Errorf("mention ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid mention ID format: %w", err)
	}
	return nil
}

// Domain classifies what kind of clinical entity a mention refers to.
type Domain string

const (
	DomainCondition Domain = "condition"
	DomainDrug      Domain = "drug"
	DomainFinding   Domain = "finding"
	DomainProcedure Domain = "procedure"
	DomainAnatomy   Domain = "anatomy"
)

// IsValid checks if the Domain is one of the supported clinical domains.
func (d Domain) IsValid() bool {
	switch d {
	case DomainCondition, DomainDrug, DomainFinding, DomainProcedure, DomainAnatomy:
		return true
	default:
		return false
	}
}

// Assertion is the negation status of a mention.
type Assertion string

const (
	AssertionPresent  Assertion = "present"
	AssertionAbsent   Assertion = "absent"
	AssertionPossible Assertion = "possible"
)

// IsValid checks if the Assertion is a supported state.
func (a Assertion) IsValid() bool {
	switch a {
	case AssertionPresent, AssertionAbsent, AssertionPossible:
		return true
	default:
		return false
	}
}

// Temporality places a mention on the clinical timeline.
type Temporality string

const (
	TemporalityCurrent Temporality = "current"
	TemporalityPast    Temporality = "past"
	TemporalityFuture  Temporality = "future"
)

// IsValid checks if the Temporality is a supported state.
func (tp Temporality) IsValid() bool {
	switch tp {
	case TemporalityCurrent, TemporalityPast, TemporalityFuture:
		return true
	default:
		return false
	}
}

// Experiencer identifies whose clinical state a mention describes.
type Experiencer string

const (
	ExperiencerPatient Experiencer = "patient"
	ExperiencerFamily  Experiencer = "family"
	ExperiencerOther   Experiencer = "other"
)

// IsValid checks if the Experiencer is a supported state.
func (e Experiencer) IsValid() bool {
	switch e {
	case ExperiencerPatient, ExperiencerFamily, ExperiencerOther:
		return true
	default:
		return false
	}
}

// Laterality records which side of the body a mention refers to, when the
// surrounding text states one.  The zero value means unstated.
type Laterality string

const (
	LateralityNone      Laterality = ""
	LateralityLeft      Laterality = "left"
	LateralityRight     Laterality = "right"
	LateralityBilateral Laterality = "bilateral"
)

// IsValid checks if the Laterality is a supported value.  The empty value is
// valid and means the text did not state a side.
func (l Laterality) IsValid() bool {
	switch l {
	case LateralityNone, LateralityLeft, LateralityRight, LateralityBilateral:
		return true
	default:
		return false
	}
}

// VocabularyID names a controlled vocabulary a concept belongs to.
type VocabularyID string

const (
	VocabSNOMED  VocabularyID = "SNOMED"
	VocabRxNorm  VocabularyID = "RxNorm"
	VocabLOINC   VocabularyID = "LOINC"
	VocabICD10CM VocabularyID = "ICD10CM"
	VocabLocal   VocabularyID = "LOCAL"
)

// Priority returns the tie-break rank of the vocabulary during candidate
// ordering.  Lower is preferred.  Unknown vocabularies sort last.
func (v VocabularyID) Priority() int {
	switch v {
	case VocabSNOMED:
		return 0
	case VocabRxNorm:
		return 1
	case VocabLOINC:
		return 2
	case VocabICD10CM:
		return 3
	case VocabLocal:
		return 4
	default:
		return 5
	}
}

// IsValid checks if the VocabularyID is a known vocabulary.
func (v VocabularyID) IsValid() bool {
	switch v {
	case VocabSNOMED, VocabRxNorm, VocabLOINC, VocabICD10CM, VocabLocal:
		return true
	default:
		return false
	}
}

// MatchMethod records how a concept candidate was obtained.
type MatchMethod string

const (
	MatchExact MatchMethod = "exact"
	MatchFuzzy MatchMethod = "fuzzy"
)

// Mention is one clinical entity recovered from note text.  Offsets are byte
// offsets into the original document text, half-open [StartOffset, EndOffset).
// A Mention is immutable once emitted by the pipeline.
type Mention struct {
	ID             MentionID   `json:"id"`
	DocumentID     string      `json:"document_id"`
	Text           string      `json:"text"`
	StartOffset    int         `json:"start_offset"`
	EndOffset      int         `json:"end_offset"`
	LexicalVariant string      `json:"lexical_variant"`
	Section        string      `json:"section,omitempty"`
	Domain         Domain      `json:"domain"`
	Assertion      Assertion   `json:"assertion"`
	Temporality    Temporality `json:"temporality"`
	Experiencer    Experiencer `json:"experiencer"`
	Laterality     Laterality  `json:"laterality,omitempty"`
	Confidence     float64     `json:"confidence"`
}

// Validate checks the structural invariants of a Mention against the document
// text it was extracted from.  Pass an empty docText to skip the offset/text
// faithfulness check (used when the caller no longer holds the source text).
func (m *Mention) Validate(docText string) error {
	if m.StartOffset < 0 || m.EndOffset <= m.StartOffset {
		return fmt.Errorf("invalid offsets [%d, %d)", m.StartOffset, m.EndOffset)
	}
	if docText != "" {
		if m.EndOffset > len(docText) {
			return fmt.Errorf("end offset %d beyond document length %d", m.EndOffset, len(docText))
		}
		if docText[m.StartOffset:m.EndOffset] != m.Text {
			return fmt.Errorf("mention text %q does not match document slice %q",
				m.Text, docText[m.StartOffset:m.EndOffset])
		}
	}
	if !m.Domain.IsValid() {
		return fmt.Errorf("invalid domain %q", m.Domain)
	}
	if !m.Assertion.IsValid() {
		return fmt.Errorf("invalid assertion %q", m.Assertion)
	}
	if !m.Temporality.IsValid() {
		return fmt.Errorf("invalid temporality %q", m.Temporality)
	}
	if !m.Experiencer.IsValid() {
		return fmt.Errorf("invalid experiencer %q", m.Experiencer)
	}
	if !m.Laterality.IsValid() {
		return fmt.Errorf("invalid laterality %q", m.Laterality)
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("confidence %f out of [0,1]", m.Confidence)
	}
	return nil
}

// Length returns the span length in bytes.
func (m *Mention) Length() int {
	return m.EndOffset - m.StartOffset
}

// Overlaps reports whether the receiver's span intersects other's span.
func (m *Mention) Overlaps(other *Mention) bool {
	return m.StartOffset < other.EndOffset && other.StartOffset < m.EndOffset
}

// OverlapFraction returns the intersection length divided by the length of the
// smaller of the two spans.  Non-overlapping spans yield 0.
func (m *Mention) OverlapFraction(other *Mention) float64 {
	lo := m.StartOffset
	if other.StartOffset > lo {
		lo = other.StartOffset
	}
	hi := m.EndOffset
	if other.EndOffset < hi {
		hi = other.EndOffset
	}
	if hi <= lo {
		return 0
	}
	smaller := m.Length()
	if other.Length() < smaller {
		smaller = other.Length()
	}
	if smaller == 0 {
		return 0
	}
	return float64(hi-lo) / float64(smaller)
}

// VocabularyEntry is one concept in a controlled vocabulary.  Entries are
// read-only after the index is built.
type VocabularyEntry struct {
	ConceptID    string       `json:"concept_id"`
	ConceptName  string       `json:"concept_name"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	DomainID     Domain       `json:"domain_id"`
	VocabularyID VocabularyID `json:"vocabulary_id"`
}

// Validate checks the structural invariants of a VocabularyEntry.
func (e *VocabularyEntry) Validate() error {
	if e.ConceptID == "" {
		return fmt.Errorf("concept ID cannot be empty")
	}
	if e.ConceptName == "" {
		return fmt.Errorf("concept name cannot be empty")
	}
	if !e.DomainID.IsValid() {
		return fmt.Errorf("invalid domain %q", e.DomainID)
	}
	if !e.VocabularyID.IsValid() {
		return fmt.Errorf("invalid vocabulary %q", e.VocabularyID)
	}
	return nil
}

// ConceptCandidate links a mention to one vocabulary concept with a ranked
// match score.
type ConceptCandidate struct {
	MentionID    MentionID    `json:"mention_id"`
	ConceptID    string       `json:"concept_id"`
	ConceptName  string       `json:"concept_name"`
	VocabularyID VocabularyID `json:"vocabulary_id"`
	DomainID     Domain       `json:"domain_id"`
	Score        float64      `json:"score"`
	Method       MatchMethod  `json:"method"`
	Rank         int          `json:"rank"`
}

// SectionSpan is one labeled region of a segmented document.  Spans are
// contiguous and cover the full document text.
type SectionSpan struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// SectionUnspecified is the label assigned to text outside any recognized
// section header.
const SectionUnspecified = "unspecified"

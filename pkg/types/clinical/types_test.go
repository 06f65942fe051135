package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMentionID_GeneratesValidUUID(t *testing.T) {
	id := NewMentionID("doc-1", 15, 24, DomainCondition)
	assert.NoError(t, id.Validate())
}

func TestNewMentionID_Deterministic(t *testing.T) {
	a := NewMentionID("doc-1", 15, 24, DomainCondition)
	b := NewMentionID("doc-1", 15, 24, DomainCondition)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, NewMentionID("doc-2", 15, 24, DomainCondition))
	assert.NotEqual(t, a, NewMentionID("doc-1", 15, 24, DomainFinding))
	assert.NotEqual(t, a, NewMentionID("doc-1", 16, 24, DomainCondition))
}

func TestMentionID_Validate_Empty(t *testing.T) {
	id := MentionID("")
	err := id.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestMentionID_Validate_InvalidFormat(t *testing.T) {
	id := MentionID("not-a-uuid")
	err := id.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mention ID format")
}

func TestDomain_IsValid(t *testing.T) {
	assert.True(t, DomainCondition.IsValid())
	assert.True(t, DomainDrug.IsValid())
	assert.True(t, DomainFinding.IsValid())
	assert.True(t, DomainProcedure.IsValid())
	assert.True(t, DomainAnatomy.IsValid())
	assert.False(t, Domain("gene").IsValid())
	assert.False(t, Domain("").IsValid())
}

func TestAssertion_IsValid(t *testing.T) {
	assert.True(t, AssertionPresent.IsValid())
	assert.True(t, AssertionAbsent.IsValid())
	assert.True(t, AssertionPossible.IsValid())
	assert.False(t, Assertion("negated").IsValid())
}

func TestLaterality_IsValid_EmptyMeansUnstated(t *testing.T) {
	assert.True(t, LateralityNone.IsValid())
	assert.True(t, LateralityBilateral.IsValid())
	assert.False(t, Laterality("dorsal").IsValid())
}

func TestVocabularyID_Priority_Order(t *testing.T) {
	assert.Less(t, VocabSNOMED.Priority(), VocabRxNorm.Priority())
	assert.Less(t, VocabRxNorm.Priority(), VocabLOINC.Priority())
	assert.Less(t, VocabLOINC.Priority(), VocabICD10CM.Priority())
	assert.Less(t, VocabICD10CM.Priority(), VocabLocal.Priority())
	assert.Less(t, VocabLocal.Priority(), VocabularyID("MESH").Priority())
}

func validMention() Mention {
	return Mention{
		ID:             NewMentionID("doc-1", 15, 24, DomainCondition),
		DocumentID:     "doc-1",
		Text:           "pneumonia",
		StartOffset:    15,
		EndOffset:      24,
		LexicalVariant: "pneumonia",
		Domain:         DomainCondition,
		Assertion:      AssertionAbsent,
		Temporality:    TemporalityCurrent,
		Experiencer:    ExperiencerPatient,
		Confidence:     0.9,
	}
}

func TestMention_Validate_AgainstDocument(t *testing.T) {
	doc := "No evidence of pneumonia today."
	m := validMention()
	assert.NoError(t, m.Validate(doc))
}

func TestMention_Validate_TextMismatch(t *testing.T) {
	doc := "No evidence of effusions today."
	m := validMention()
	err := m.Validate(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestMention_Validate_InvalidOffsets(t *testing.T) {
	m := validMention()
	m.StartOffset = 10
	m.EndOffset = 10
	assert.Error(t, m.Validate(""))

	m = validMention()
	m.StartOffset = -1
	assert.Error(t, m.Validate(""))
}

func TestMention_Validate_OffsetBeyondDocument(t *testing.T) {
	m := validMention()
	err := m.Validate("short")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "beyond document length")
}

func TestMention_Validate_ConfidenceBounds(t *testing.T) {
	m := validMention()
	m.Confidence = 1.2
	assert.Error(t, m.Validate(""))

	m.Confidence = -0.1
	assert.Error(t, m.Validate(""))
}

func TestMention_Overlaps(t *testing.T) {
	a := Mention{StartOffset: 10, EndOffset: 20}
	b := Mention{StartOffset: 15, EndOffset: 25}
	c := Mention{StartOffset: 20, EndOffset: 30}

	assert.True(t, a.Overlaps(&b))
	assert.True(t, b.Overlaps(&a))
	assert.False(t, a.Overlaps(&c), "touching spans do not overlap")
}

func TestMention_OverlapFraction(t *testing.T) {
	a := Mention{StartOffset: 0, EndOffset: 10}
	b := Mention{StartOffset: 5, EndOffset: 15}
	// Intersection is 5, smaller span is 10.
	assert.InDelta(t, 0.5, a.OverlapFraction(&b), 1e-9)

	inner := Mention{StartOffset: 2, EndOffset: 6}
	// Inner span fully contained: fraction relative to the smaller span is 1.
	assert.InDelta(t, 1.0, a.OverlapFraction(&inner), 1e-9)

	disjoint := Mention{StartOffset: 20, EndOffset: 25}
	assert.Zero(t, a.OverlapFraction(&disjoint))
}

func TestVocabularyEntry_Validate(t *testing.T) {
	e := VocabularyEntry{
		ConceptID:    "233604007",
		ConceptName:  "Pneumonia",
		Synonyms:     []string{"lung infection"},
		DomainID:     DomainCondition,
		VocabularyID: VocabSNOMED,
	}
	assert.NoError(t, e.Validate())

	e.ConceptID = ""
	assert.Error(t, e.Validate())

	e = VocabularyEntry{ConceptID: "1", ConceptName: "x", DomainID: "bogus", VocabularyID: VocabSNOMED}
	assert.Error(t, e.Validate())
}

package sectionizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

const sampleNote = `CC: chest pain
HPI: 62yo male with substernal chest pain since this morning.
PMH: hypertension, type 2 diabetes mellitus
MEDICATIONS: lisinopril 10mg daily, metformin 500mg BID
A/P: likely ACS, start heparin
`

func TestSegment_EmptyText(t *testing.T) {
	spans := New().Segment("")
	assert.Empty(t, spans)
}

func TestSegment_NoHeaders_SingleUnspecifiedSpan(t *testing.T) {
	text := "patient is resting comfortably without complaints"
	spans := New().Segment(text)

	require.Len(t, spans, 1)
	assert.Equal(t, clinical.SectionUnspecified, spans[0].Label)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, len(text), spans[0].End)
}

func TestSegment_CoversWholeDocumentContiguously(t *testing.T) {
	spans := New().Segment(sampleNote)
	require.NotEmpty(t, spans)

	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, len(sampleNote), spans[len(spans)-1].End)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].End, spans[i].Start, "spans must be contiguous")
	}
}

func TestSegment_RecognizesAbbreviatedHeaders(t *testing.T) {
	spans := New().Segment(sampleNote)

	labels := make([]string, len(spans))
	for i, sp := range spans {
		labels[i] = sp.Label
	}
	assert.Equal(t, []string{
		SectionChiefComplaint,
		SectionHPI,
		SectionPastMedicalHistory,
		SectionMedications,
		SectionAssessmentPlan,
	}, labels)
}

func TestSegment_LeadingProseIsUnspecified(t *testing.T) {
	text := "Transfer note from outside hospital.\nHPI: fever and cough for 3 days.\n"
	spans := New().Segment(text)

	require.Len(t, spans, 2)
	assert.Equal(t, clinical.SectionUnspecified, spans[0].Label)
	assert.Equal(t, SectionHPI, spans[1].Label)
}

func TestSegment_CaseInsensitiveHeaders(t *testing.T) {
	text := "chief complaint: dyspnea\nplan: diuresis\n"
	spans := New().Segment(text)

	require.Len(t, spans, 2)
	assert.Equal(t, SectionChiefComplaint, spans[0].Label)
	assert.Equal(t, SectionPlan, spans[1].Label)
}

func TestSegment_HeaderRequiresColon(t *testing.T) {
	text := "The plan was discussed with the family at length."
	spans := New().Segment(text)

	require.Len(t, spans, 1)
	assert.Equal(t, clinical.SectionUnspecified, spans[0].Label)
}

func TestSegment_DischargeMedicationsBeforeMedications(t *testing.T) {
	text := "DISCHARGE MEDICATIONS: apixaban 5mg BID\n"
	spans := New().Segment(text)

	require.Len(t, spans, 1)
	assert.Equal(t, SectionDischargeMedications, spans[0].Label)
}

func TestSegment_FamilyHistoryAbbreviation(t *testing.T) {
	text := "FH: mother had colon cancer\n"
	spans := New().Segment(text)

	require.Len(t, spans, 1)
	assert.Equal(t, SectionFamilyHistory, spans[0].Label)
}

func TestAt(t *testing.T) {
	spans := New().Segment(sampleNote)

	hpiStart := strings.Index(sampleNote, "62yo")
	assert.Equal(t, SectionHPI, At(spans, hpiStart))
	assert.Equal(t, SectionChiefComplaint, At(spans, 0))
	assert.Equal(t, clinical.SectionUnspecified, At(spans, len(sampleNote)+10))
}

func TestNewWithHeaders_CustomTable(t *testing.T) {
	s := NewWithHeaders(map[string]string{
		"triage": `TRIAGE\s+NOTE`,
	})
	spans := s.Segment("TRIAGE NOTE: brought in by EMS\n")

	require.Len(t, spans, 1)
	assert.Equal(t, "triage", spans[0].Label)
}

func TestDomainAffinity(t *testing.T) {
	assert.Equal(t, 1.0, DomainAffinity(SectionMedications, clinical.DomainDrug))
	assert.Equal(t, 0.3, DomainAffinity(SectionMedications, clinical.DomainCondition))
	assert.Equal(t, 0.5, DomainAffinity("triage", clinical.DomainCondition), "unknown sections are neutral")
}

func TestConfidenceModifier_Range(t *testing.T) {
	high := ConfidenceModifier(SectionPastMedicalHistory, clinical.DomainCondition)
	assert.InDelta(t, 1.1, high, 1e-9)

	neutral := ConfidenceModifier("triage", clinical.DomainCondition)
	assert.InDelta(t, 0.9625, neutral, 1e-9)

	low := ConfidenceModifier(SectionMedications, clinical.DomainCondition)
	assert.GreaterOrEqual(t, low, 0.8)
	assert.Less(t, low, 0.95)
}

package measures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

func extract(t *testing.T, text string) []clinical.Mention {
	t.Helper()
	mentions, err := New(nil).Extract(context.Background(), "doc-1", text, nil)
	require.NoError(t, err)
	return mentions
}

func TestExtractVitals(t *testing.T) {
	text := "VS: BP 148/92, HR 110, temp 101.2 F, O2 sat 94%."
	mentions := extract(t, text)

	require.Len(t, mentions, 4)
	variants := make([]string, len(mentions))
	for i, m := range mentions {
		variants[i] = m.LexicalVariant
		assert.Equal(t, m.Text, text[m.StartOffset:m.EndOffset])
		assert.Equal(t, clinical.DomainFinding, m.Domain)
	}
	assert.Equal(t, []string{"blood pressure", "heart rate", "temperature", "oxygen saturation"}, variants)
}

func TestExtractLabs(t *testing.T) {
	text := "Labs notable for creatinine 2.1, troponin 0.04, BNP 890, a1c 8.2%."
	mentions := extract(t, text)

	require.Len(t, mentions, 4)
	assert.Equal(t, "creatinine", mentions[0].LexicalVariant)
	assert.Equal(t, "troponin", mentions[1].LexicalVariant)
	assert.Equal(t, "bnp", mentions[2].LexicalVariant)
	assert.Equal(t, "hemoglobin a1c", mentions[3].LexicalVariant)
}

func TestExtractOrderedAndNonOverlapping(t *testing.T) {
	text := "BP 110/70. Repeat BP 104/68 after fluids. HR 88."
	mentions := extract(t, text)

	require.Len(t, mentions, 3)
	for i := 1; i < len(mentions); i++ {
		assert.GreaterOrEqual(t, mentions[i].StartOffset, mentions[i-1].EndOffset)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	mentions, err := New(nil).Extract(context.Background(), "doc-1", "  ", nil)
	require.NoError(t, err)
	assert.Empty(t, mentions)
}

func TestExtractNoMeasures(t *testing.T) {
	mentions := extract(t, "Patient resting comfortably, no complaints overnight.")
	assert.Empty(t, mentions)
}

func TestExtractSectionScaling(t *testing.T) {
	note := "VITAL SIGNS: BP 130/85.\n"
	spans := sectionizer.New().Segment(note)

	mentions, err := New(nil).Extract(context.Background(), "doc-1", note, spans)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, sectionizer.SectionVitalSigns, mentions[0].Section)

	bare := extract(t, "BP 130/85.")
	require.Len(t, bare, 1)
	assert.Greater(t, mentions[0].Confidence, bare[0].Confidence)
}

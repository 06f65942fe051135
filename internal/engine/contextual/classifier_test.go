package contextual

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// locate finds term within text and fails the test when absent.
func locate(t *testing.T, text, term string) (int, int) {
	t.Helper()
	idx := strings.Index(text, term)
	require.GreaterOrEqual(t, idx, 0, "term %q not found in %q", term, text)
	return idx, idx + len(term)
}

func classify(t *testing.T, text, term, section string) Context {
	t.Helper()
	start, end := locate(t, text, term)
	return New(Config{}).Classify(text, section, start, end)
}

func TestClassifyAssertion(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want clinical.Assertion
	}{
		{"plain statement", "Patient has pneumonia.", "pneumonia", clinical.AssertionPresent},
		{"pre-negation", "No evidence of pneumonia today.", "pneumonia", clinical.AssertionAbsent},
		{"denies", "Denies chest pain.", "chest pain", clinical.AssertionAbsent},
		{"post-negation", "Pneumonia was ruled out.", "Pneumonia", clinical.AssertionAbsent},
		{"uncertainty", "Possible UTI.", "UTI", clinical.AssertionPossible},
		{"concern for", "Concern for sepsis given hypotension.", "sepsis", clinical.AssertionPossible},
		{"pseudo-negation suppresses", "No change in chronic pneumonia.", "pneumonia", clinical.AssertionPresent},
		{"cannot be ruled out", "Pneumonia cannot be ruled out.", "Pneumonia", clinical.AssertionPossible},
		{"negation scoped to clause", "Denies chest pain; reports fever.", "fever", clinical.AssertionPresent},
		{"negation in own clause", "Denies chest pain; reports fever.", "chest pain", clinical.AssertionAbsent},
		{"conjunction breaks scope", "Denies chest pain but has fever.", "fever", clinical.AssertionPresent},
		{"negation across sentence", "No acute distress. Pneumonia on imaging.", "Pneumonia", clinical.AssertionPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.text, tt.term, clinical.SectionUnspecified)
			assert.Equal(t, tt.want, got.Assertion)
		})
	}
}

func TestClassifyAssertionScopeLimit(t *testing.T) {
	// The trigger sits farther than MaxScopeChars from the mention within
	// one clause, so it no longer negates.
	text := "No cough with " + strings.Repeat("very ", 12) + "bad pneumonia"
	got := classify(t, text, "pneumonia", clinical.SectionUnspecified)
	assert.Equal(t, clinical.AssertionPresent, got.Assertion)
}

func TestClassifyTemporality(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		term    string
		section string
		want    clinical.Temporality
	}{
		{"default current", "Patient has pneumonia.", "pneumonia", clinical.SectionUnspecified, clinical.TemporalityCurrent},
		{"history of", "History of CHF.", "CHF", clinical.SectionUnspecified, clinical.TemporalityPast},
		{"status post", "s/p CABG in 2019.", "CABG", clinical.SectionUnspecified, clinical.TemporalityPast},
		{"current overrides past", "Now with worsening of prior CHF.", "CHF", clinical.SectionUnspecified, clinical.TemporalityCurrent},
		{"future trigger", "Watch for fever at home.", "fever", clinical.SectionUnspecified, clinical.TemporalityFuture},
		{"scheduled for", "Scheduled for colonoscopy next month.", "colonoscopy", clinical.SectionUnspecified, clinical.TemporalityFuture},
		{"planned", "Planned colonoscopy next month.", "colonoscopy", clinical.SectionUnspecified, clinical.TemporalityFuture},
		{"will need", "Will need colonoscopy for surveillance.", "colonoscopy", clinical.SectionUnspecified, clinical.TemporalityFuture},
		{"pmh section fallback", "CHF.", "CHF", sectionizer.SectionPastMedicalHistory, clinical.TemporalityPast},
		{"follow up section fallback", "Fever.", "Fever", sectionizer.SectionFollowUp, clinical.TemporalityFuture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.text, tt.term, tt.section)
			assert.Equal(t, tt.want, got.Temporality)
		})
	}
}

func TestClassifyExperiencer(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		term    string
		section string
		want    clinical.Experiencer
	}{
		{"default patient", "Patient has pneumonia.", "pneumonia", clinical.SectionUnspecified, clinical.ExperiencerPatient},
		{"family trigger", "Mother had colon cancer.", "colon cancer", clinical.SectionUnspecified, clinical.ExperiencerFamily},
		{"family history section", "Colon cancer.", "Colon cancer", sectionizer.SectionFamilyHistory, clinical.ExperiencerFamily},
		{"other trigger", "Roommate diagnosed with influenza.", "influenza", clinical.SectionUnspecified, clinical.ExperiencerOther},
		{"family scoped to clause", "Mother had colon cancer. Patient reports fever.", "fever", clinical.SectionUnspecified, clinical.ExperiencerPatient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.text, tt.term, tt.section)
			assert.Equal(t, tt.want, got.Experiencer)
		})
	}
}

func TestDetectLaterality(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want clinical.Laterality
	}{
		{"left", "Left lower lobe pneumonia seen on imaging.", "pneumonia", clinical.LateralityLeft},
		{"right", "Pain in the right knee.", "knee", clinical.LateralityRight},
		{"bilateral", "Bilateral pleural effusions present.", "pleural effusions", clinical.LateralityBilateral},
		{"b/l before left", "b/l lower extremity edema.", "edema", clinical.LateralityBilateral},
		{"unstated", "Patient has pneumonia.", "pneumonia", clinical.LateralityNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.text, tt.term, clinical.SectionUnspecified)
			assert.Equal(t, tt.want, got.Laterality)
		})
	}
}

func TestDetectLateralityWindow(t *testing.T) {
	// The side marker is more than five tokens away from the mention.
	text := "Left arm examined earlier today without incident; patient also reports some pneumonia symptoms"
	start, end := locate(t, text, "pneumonia")
	assert.Equal(t, clinical.LateralityNone, detectLaterality(text, start, end, 5))
}

package vocab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Heart Failure", "heart failure"},
		{"  end-stage  renal\tdisease ", "end stage renal disease"},
		{"N/V", "n v"},
		{"H.P.I.", "hpi"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("pneumonia", "pneumonia"), 1e-9)
	assert.Equal(t, 0.0, Similarity("pneumonia", ""))

	// A one-letter misspelling stays close to 1.
	typo := Similarity("pneumonia", "pneumonia"[:8]+"e")
	assert.Greater(t, typo, 0.5)

	// Word reordering keeps full token overlap.
	reorder := Similarity("failure heart", "heart failure")
	assert.Greater(t, reorder, 0.5)

	// Unrelated terms score low.
	assert.Less(t, Similarity("warfarin", "pneumonia"), 0.3)
}

func TestIndexExact(t *testing.T) {
	ix := DefaultIndex()

	matches := ix.Exact("Heart failure", clinical.DomainCondition)
	require.NotEmpty(t, matches)
	assert.Equal(t, "84114007", matches[0].Entry.ConceptID)
	assert.Equal(t, clinical.MatchExact, matches[0].Method)
	assert.InDelta(t, 0.95, matches[0].Score, 1e-9)

	// Synonyms hit the same entry.
	bySynonym := ix.Exact("congestive heart failure", clinical.DomainCondition)
	require.NotEmpty(t, bySynonym)
	assert.Equal(t, "84114007", bySynonym[0].Entry.ConceptID)
}

func TestIndexExactScoreScalesWithMatchedForms(t *testing.T) {
	ix, err := NewIndex([]clinical.VocabularyEntry{
		{ConceptID: "C1", ConceptName: "chest pain", Synonyms: []string{"Chest Pain"},
			DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "C2", ConceptName: "angina", Synonyms: []string{"chest pain"},
			DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
	})
	require.NoError(t, err)

	matches := ix.Exact("chest pain", clinical.DomainCondition)
	require.Len(t, matches, 2)

	byConcept := make(map[string]float64, 2)
	for _, m := range matches {
		byConcept[m.Entry.ConceptID] = m.Score
	}
	// C1 matched twice (name plus a case variant synonym), C2 once.
	assert.InDelta(t, 1.0, byConcept["C1"], 1e-9)
	assert.InDelta(t, 0.95, byConcept["C2"], 1e-9)
	assert.Greater(t, byConcept["C1"], byConcept["C2"])
}

func TestIndexExactDomainFilter(t *testing.T) {
	ix := DefaultIndex()
	assert.Empty(t, ix.Exact("heart failure", clinical.DomainDrug))
	assert.NotEmpty(t, ix.Exact("heart failure", ""))
}

func TestIndexSearchRanksExactAboveFuzzy(t *testing.T) {
	ix := DefaultIndex()

	matches := ix.Search("hypertension", clinical.DomainCondition, 0.4, 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, clinical.MatchExact, matches[0].Method)
	// SNOMED outranks the ICD-10-CM mirror at equal score.
	assert.Equal(t, clinical.VocabSNOMED, matches[0].Entry.VocabularyID)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestIndexSearchFuzzyMisspelling(t *testing.T) {
	ix := DefaultIndex()

	matches := ix.Search("pnuemonia", clinical.DomainCondition, 0.4, 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, clinical.MatchFuzzy, matches[0].Method)
	assert.Equal(t, "233604007", matches[0].Entry.ConceptID)
	assert.Less(t, matches[0].Score, 1.0)
}

func TestIndexSearchRespectsLimit(t *testing.T) {
	ix := DefaultIndex()
	matches := ix.Search("heart", "", 0.1, 3)
	assert.LessOrEqual(t, len(matches), 3)
}

func TestIndexSearchMemoized(t *testing.T) {
	ix := DefaultIndex()
	first := ix.Search("pnuemonia", clinical.DomainCondition, 0.4, 5)
	second := ix.Search("pnuemonia", clinical.DomainCondition, 0.4, 5)
	assert.Equal(t, first, second)
}

func TestIndexSearchNoMatch(t *testing.T) {
	ix := DefaultIndex()
	assert.Empty(t, ix.Search("zzqx", clinical.DomainCondition, 0.4, 5))
	assert.Empty(t, ix.Search("", clinical.DomainCondition, 0.4, 5))
}

func TestNewIndexRejectsInvalidEntries(t *testing.T) {
	_, err := NewIndex([]clinical.VocabularyEntry{{ConceptName: "orphan", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeVocabularyLoadFailed, apperrors.GetCode(err))

	_, err = NewIndex(nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeVocabularyEmpty, apperrors.GetCode(err))
}

// fakeSource returns canned entries or a canned error.
type fakeSource struct {
	entries []clinical.VocabularyEntry
	err     error
}

func (f *fakeSource) Name() string { return "fake" }
func (f *fakeSource) Load(context.Context) ([]clinical.VocabularyEntry, error) {
	return f.entries, f.err
}

func TestStoreUnavailableBeforeLoad(t *testing.T) {
	s := NewStore(&fakeSource{entries: DefaultEntries()}, nil)

	assert.False(t, s.Ready())
	_, err := s.Current()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeVocabularyUnavailable, apperrors.GetCode(err))
}

func TestStoreLoadAndReload(t *testing.T) {
	src := &fakeSource{entries: DefaultEntries()}
	s := NewStore(src, nil)
	require.NoError(t, s.Load(context.Background()))

	ix, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, len(DefaultEntries()), ix.Size())

	// A failed reload keeps the previous index live.
	src.err = apperrors.New(apperrors.ErrCodeDatabaseError, "connection refused")
	src.entries = nil
	require.Error(t, s.Load(context.Background()))
	again, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, ix.Size(), again.Size())
}

package vocab

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

const (
	// defaultMemoSize bounds the fuzzy-lookup memo.
	defaultMemoSize = 4096

	// maxFuzzyCandidates caps how many trigram-sharing terms are scored per
	// query.
	maxFuzzyCandidates = 200

	// Exact scoring: one matched form scores exactBaseScore; every further
	// name or synonym of the entry that also normalizes to the query adds
	// exactFormBonus, capped at 1.
	exactBaseScore = 0.95
	exactFormBonus = 0.05
)

// Match is one index hit for a query term.
type Match struct {
	Entry  clinical.VocabularyEntry
	Term   string // the normalized name or synonym that matched
	Score  float64
	Method clinical.MatchMethod
}

// indexedTerm is one searchable surface (a concept name or synonym).
type indexedTerm struct {
	norm  string
	entry int
}

// Index is the in-memory concept index.  It is immutable after construction
// and safe for concurrent use; the fuzzy memo is internally synchronized.
type Index struct {
	entries []clinical.VocabularyEntry
	terms   []indexedTerm
	exact   map[string][]int // normalized term -> term IDs
	grams   map[string][]int // trigram -> term IDs
	memo    *lru.Cache[string, []Match]
}

// NewIndex validates and indexes the given entries.
func NewIndex(entries []clinical.VocabularyEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeVocabularyEmpty, "vocabulary has no entries")
	}

	ix := &Index{
		entries: entries,
		exact:   make(map[string][]int),
		grams:   make(map[string][]int),
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrCodeVocabularyLoadFailed,
				fmt.Sprintf("entry %d (%s): %v", i, entries[i].ConceptID, err))
		}
		ix.addTerm(entries[i].ConceptName, i)
		for _, syn := range entries[i].Synonyms {
			ix.addTerm(syn, i)
		}
	}

	memo, err := lru.New[string, []Match](defaultMemoSize)
	if err != nil {
		return nil, apperrors.Internal("memo init failed").WithCause(err)
	}
	ix.memo = memo
	return ix, nil
}

func (ix *Index) addTerm(term string, entry int) {
	norm := Normalize(term)
	if norm == "" {
		return
	}
	id := len(ix.terms)
	ix.terms = append(ix.terms, indexedTerm{norm: norm, entry: entry})
	ix.exact[norm] = append(ix.exact[norm], id)
	for g := range trigrams(norm) {
		ix.grams[g] = append(ix.grams[g], id)
	}
}

// Size returns the number of indexed entries.
func (ix *Index) Size() int { return len(ix.entries) }

// Exact returns the entries whose name or a synonym equals the normalized
// term.  The score starts at exactBaseScore and grows with the number of the
// entry's forms that matched, so a concept the query names several ways
// outranks one it names once.
func (ix *Index) Exact(term string, domain clinical.Domain) []Match {
	norm := Normalize(term)
	counts := make(map[int]int)
	var order []int
	for _, id := range ix.exact[norm] {
		t := ix.terms[id]
		if counts[t.entry] == 0 {
			order = append(order, t.entry)
		}
		counts[t.entry]++
	}

	var out []Match
	for _, entry := range order {
		e := ix.entries[entry]
		if domain != "" && e.DomainID != domain {
			continue
		}
		score := exactBaseScore + exactFormBonus*float64(counts[entry]-1)
		if score > 1 {
			score = 1
		}
		out = append(out, Match{Entry: e, Term: norm, Score: score, Method: clinical.MatchExact})
	}
	return out
}

// Search returns the best matches for a term within a domain, exact hits
// first, then fuzzy hits scoring at least minScore, at most limit in total.
// An empty domain searches all domains.  Results are ordered by descending
// score, then vocabulary priority, then concept ID.
func (ix *Index) Search(term string, domain clinical.Domain, minScore float64, limit int) []Match {
	norm := Normalize(term)
	if norm == "" || limit <= 0 {
		return nil
	}

	key := fmt.Sprintf("%s|%.3f|%d|%s", domain, minScore, limit, norm)
	if cached, ok := ix.memo.Get(key); ok {
		return cached
	}

	matches := ix.Exact(norm, domain)
	exactEntries := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		exactEntries[entryKey(&m.Entry)] = struct{}{}
	}

	for _, m := range ix.fuzzy(norm, domain, minScore) {
		if _, dup := exactEntries[entryKey(&m.Entry)]; dup {
			continue
		}
		matches = append(matches, m)
	}

	sortMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	ix.memo.Add(key, matches)
	return matches
}

// fuzzy scores trigram-sharing candidate terms and keeps the best match per
// entry.
func (ix *Index) fuzzy(norm string, domain clinical.Domain, minScore float64) []Match {
	shared := make(map[int]int)
	for g := range trigrams(norm) {
		for _, id := range ix.grams[g] {
			shared[id]++
		}
	}
	if len(shared) == 0 {
		return nil
	}

	ids := make([]int, 0, len(shared))
	for id := range shared {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if shared[ids[i]] != shared[ids[j]] {
			return shared[ids[i]] > shared[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > maxFuzzyCandidates {
		ids = ids[:maxFuzzyCandidates]
	}

	best := make(map[int]Match)
	for _, id := range ids {
		t := ix.terms[id]
		e := ix.entries[t.entry]
		if domain != "" && e.DomainID != domain {
			continue
		}
		score := Similarity(norm, t.norm)
		if score < minScore {
			continue
		}
		if prev, ok := best[t.entry]; !ok || score > prev.Score {
			best[t.entry] = Match{Entry: e, Term: t.norm, Score: score, Method: clinical.MatchFuzzy}
		}
	}

	out := make([]Match, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	return out
}

func entryKey(e *clinical.VocabularyEntry) string {
	return string(e.VocabularyID) + "|" + e.ConceptID
}

// sortMatches orders by descending score, then vocabulary priority, then
// concept ID, giving a fully deterministic ranking.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		pi, pj := matches[i].Entry.VocabularyID.Priority(), matches[j].Entry.VocabularyID.Priority()
		if pi != pj {
			return pi < pj
		}
		return matches[i].Entry.ConceptID < matches[j].Entry.ConceptID
	})
}

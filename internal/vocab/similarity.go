package vocab

import "strings"

// Fuzzy similarity is a fixed-weight blend of three signals.  Edit distance
// catches misspellings, token overlap catches word reordering, and trigram
// overlap catches partial forms.
const (
	weightEdit    = 0.4
	weightJaccard = 0.3
	weightTrigram = 0.3
)

// Similarity scores two already-normalized terms in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return weightEdit*editSimilarity(a, b) +
		weightJaccard*tokenJaccard(a, b) +
		weightTrigram*trigramDice(a, b)
}

// editSimilarity is 1 minus the Levenshtein distance over the longer length.
func editSimilarity(a, b string) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return 1 - float64(levenshtein(a, b))/float64(longer)
}

// levenshtein computes byte-level edit distance with a two-row table.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// tokenJaccard is set overlap of whitespace tokens.
func tokenJaccard(a, b string) float64 {
	ta := strings.Split(a, " ")
	tb := strings.Split(b, " ")
	set := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		set[t] = struct{}{}
	}
	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// trigramDice is the Dice coefficient over character trigram sets.
func trigramDice(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			inter++
		}
	}
	return 2 * float64(inter) / float64(len(ta)+len(tb))
}

// trigrams returns the character trigram set of a term padded with leading
// and trailing spaces, so short terms still produce boundary grams.
func trigrams(term string) map[string]struct{} {
	padded := "  " + term + " "
	out := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		out[padded[i:i+3]] = struct{}{}
	}
	return out
}

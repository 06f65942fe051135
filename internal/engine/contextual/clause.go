package contextual

import "regexp"

// Clause scoping bounds every trigger scan.  A clause is delimited by hard
// terminators (sentence punctuation, newlines) or clause-break conjunctions
// ("denies chest pain but has fever" splits at "but"), so a negation in one
// clause can never leak into the next.

// defaultDelimiters are the hard clause terminators.
var defaultDelimiters = []string{";", ".", ":", "\n"}

// clauseConjunctions break a clause without terminating the sentence.
var clauseConjunctions = regexp.MustCompile(`(?i)\b(?:but|however|although|except|yet|though|still|aside from|apart from|other than|nevertheless)\b`)

// maxClauseRadius caps how far a clause may extend on either side of the
// mention when the text carries no delimiters at all.
const maxClauseRadius = 200

// Clause is the half-open [Start, End) region of text enclosing a mention.
type Clause struct {
	Start int
	End   int
}

// clauseSplitter finds clause boundaries around a mention position.
type clauseSplitter struct {
	delimiters []string
}

func newClauseSplitter(delimiters []string) *clauseSplitter {
	if len(delimiters) == 0 {
		delimiters = defaultDelimiters
	}
	return &clauseSplitter{delimiters: delimiters}
}

// around returns the clause containing [start, end).  The boundary on each
// side is the nearest delimiter or conjunction; absent both, the clause is
// clamped to maxClauseRadius bytes per side.
func (cs *clauseSplitter) around(text string, start, end int) Clause {
	lo := start - maxClauseRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + maxClauseRadius
	if hi > len(text) {
		hi = len(text)
	}

	// Left boundary: the rightmost delimiter or conjunction END before start.
	left := lo
	for _, d := range cs.delimiters {
		if p := lastIndexBefore(text, d, lo, start); p >= 0 && p+len(d) > left {
			left = p + len(d)
		}
	}
	for _, m := range clauseConjunctions.FindAllStringIndex(text[lo:start], -1) {
		if lo+m[1] > left {
			left = lo + m[1]
		}
	}

	// Right boundary: the leftmost delimiter or conjunction START after end.
	right := hi
	for _, d := range cs.delimiters {
		if p := firstIndexAfter(text, d, end, hi); p >= 0 && p < right {
			right = p
		}
	}
	if m := clauseConjunctions.FindStringIndex(text[end:hi]); m != nil && end+m[0] < right {
		right = end + m[0]
	}

	return Clause{Start: left, End: right}
}

// lastIndexBefore returns the byte index of the last occurrence of sep in
// text[lo:limit), or -1.
func lastIndexBefore(text, sep string, lo, limit int) int {
	if limit > len(text) {
		limit = len(text)
	}
	for i := limit - len(sep); i >= lo; i-- {
		if text[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}

// firstIndexAfter returns the byte index of the first occurrence of sep in
// text[from:hi), or -1.
func firstIndexAfter(text, sep string, from, hi int) int {
	if hi > len(text) {
		hi = len(text)
	}
	for i := from; i+len(sep) <= hi; i++ {
		if text[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}

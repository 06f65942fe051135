// Package vocab maintains the concept vocabulary index: exact lookup over
// normalized names and synonyms, and fuzzy lookup combining edit distance,
// token overlap, and character trigram similarity.
package vocab

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a term for index keys and similarity comparison:
// Unicode NFC, lowercase, separator punctuation to spaces, everything else
// non-alphanumeric dropped, whitespace collapsed.
func Normalize(term string) string {
	term = norm.NFC.String(term)
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '/' || r == '_' || unicode.IsSpace(r):
			b.WriteByte(' ')
		}
		// Other punctuation (periods in "h.p.i.", apostrophes) drops out.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized term split into words.
func Tokens(term string) []string {
	n := Normalize(term)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

package contextual

import (
	"regexp"
	"strings"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Laterality patterns are checked in order: bilateral forms first so "b/l"
// can never match as "l" (left).
var lateralityPatterns = []struct {
	laterality clinical.Laterality
	re         *regexp.Regexp
}{
	{clinical.LateralityBilateral, regexp.MustCompile(`(?i)\b(?:bilateral(?:ly)?|b/l|bilat|both\s+(?:sides|extremities|eyes|ears|lungs|kidneys|legs|arms))\b`)},
	{clinical.LateralityLeft, regexp.MustCompile(`(?i)\b(?:left|left-sided|lt)\b`)},
	{clinical.LateralityRight, regexp.MustCompile(`(?i)\b(?:right|right-sided|rt)\b`)},
}

// lateralityWindow expands [start, end) by up to n tokens on each side and
// returns the enclosing window text.
func lateralityWindow(text string, start, end, n int) string {
	lo := start
	tokens := 0
	for lo > 0 && tokens <= n {
		lo--
		if lo == 0 || isTokenBreak(text[lo-1]) && !isTokenBreak(text[lo]) {
			tokens++
		}
	}
	hi := end
	tokens = 0
	for hi < len(text) && tokens <= n {
		if isTokenBreak(text[hi]) {
			tokens++
		}
		hi++
	}
	return text[lo:hi]
}

func isTokenBreak(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// detectLaterality scans an n-token window around the mention for a stated
// side.  Returns LateralityNone when the text states none.
func detectLaterality(text string, start, end, windowTokens int) clinical.Laterality {
	window := strings.ToLower(lateralityWindow(text, start, end, windowTokens))
	for _, p := range lateralityPatterns {
		if p.re.MatchString(window) {
			return p.laterality
		}
	}
	return clinical.LateralityNone
}

// Package measures extracts vital-sign and laboratory readings from note
// text by pattern matching ("BP 148/92", "troponin 0.04").  It is the
// second voter in the extraction ensemble: its spans corroborate or extend
// the lexicon extractor's findings inside flowsheet-style text the lexicon
// cannot parse.
package measures

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// baseConfidence is the score for a pattern hit before section scaling.
// Numeric patterns are precise but carry no lexical evidence, so they start
// below a clean lexicon match.
const baseConfidence = 0.85

// pattern ties a canonical measure name to its surface regex.
type pattern struct {
	variant string
	re      *regexp.Regexp
}

var defaultPatterns = []pattern{
	{"blood pressure", regexp.MustCompile(`(?i)\b(?:bp|blood pressure)[:\s]+\d{2,3}\s*/\s*\d{2,3}\b`)},
	{"heart rate", regexp.MustCompile(`(?i)\b(?:hr|heart rate|pulse)[:\s]+\d{2,3}\b`)},
	{"temperature", regexp.MustCompile(`(?i)\btemp(?:erature)?[:\s]+\d{2,3}(?:\.\d)?\s*(?:f|c)?\b`)},
	{"oxygen saturation", regexp.MustCompile(`(?i)\b(?:o2\s*sat|spo2|sats?|o2)[:\s]+\d{2,3}\s*%`)},
	{"respiratory rate", regexp.MustCompile(`(?i)\b(?:rr|respiratory rate|resp)[:\s]+\d{1,2}\b`)},
	{"glucose", regexp.MustCompile(`(?i)\b(?:glucose|blood sugar|fsbs|bg)[:\s]+\d{2,3}\b`)},
	{"creatinine", regexp.MustCompile(`(?i)\b(?:creatinine|cr)[:\s]+\d{1,2}(?:\.\d{1,2})?\b`)},
	{"hemoglobin", regexp.MustCompile(`(?i)\b(?:hemoglobin|hgb|hb)[:\s]+\d{1,2}(?:\.\d)?\b`)},
	{"white blood cell count", regexp.MustCompile(`(?i)\b(?:wbc|white (?:blood cell )?count)[:\s]+\d{1,3}(?:\.\d)?\b`)},
	{"platelet count", regexp.MustCompile(`(?i)\b(?:platelets?|plt)[:\s]+\d{2,4}k?\b`)},
	{"sodium", regexp.MustCompile(`(?i)\b(?:sodium|na)[:\s]+1\d{2}\b`)},
	{"potassium", regexp.MustCompile(`(?i)\b(?:potassium|k)[:\s]+\d(?:\.\d)?\b`)},
	{"troponin", regexp.MustCompile(`(?i)\btroponin(?:\s*[it])?[:\s]+<?\s*\d+(?:\.\d+)?\b`)},
	{"bnp", regexp.MustCompile(`(?i)\b(?:nt-probnp|bnp)[:\s]+\d{2,5}\b`)},
	{"hemoglobin a1c", regexp.MustCompile(`(?i)\b(?:hemoglobin a1c|hba1c|a1c)[:\s]+\d{1,2}(?:\.\d)?\s*%?`)},
	{"inr", regexp.MustCompile(`(?i)\binr[:\s]+\d(?:\.\d{1,2})?\b`)},
	{"ejection fraction", regexp.MustCompile(`(?i)\b(?:ejection fraction|ef)[:\s]+(?:of\s+)?\d{1,2}\s*%`)},
}

// Extractor finds measurement spans.  Safe for concurrent use.
type Extractor struct {
	patterns []pattern
	logger   logging.Logger
}

// New constructs the measures extractor with the built-in pattern set.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{patterns: defaultPatterns, logger: logger.Named("measures")}
}

// Name identifies the extractor in ensemble votes.
func (e *Extractor) Name() string { return "measures" }

// Priority breaks ensemble ties; lower wins.
func (e *Extractor) Priority() int { return 2 }

// Extract returns one finding-domain mention per measurement hit.  The
// assertion axes are left zero for the caller's context classification
// pass.  Empty input yields no mentions and no error.
func (e *Extractor) Extract(ctx context.Context, docID, text string, sections []clinical.SectionSpan) ([]clinical.Mention, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("extraction cancelled").WithCause(err)
	}

	var mentions []clinical.Mention
	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			section := sectionizer.At(sections, loc[0])
			score := baseConfidence * sectionizer.ConfidenceModifier(section, clinical.DomainFinding)
			if score > 1 {
				score = 1
			}
			mentions = append(mentions, clinical.Mention{
				ID:             clinical.NewMentionID(docID, loc[0], loc[1], clinical.DomainFinding),
				DocumentID:     docID,
				Text:           text[loc[0]:loc[1]],
				StartOffset:    loc[0],
				EndOffset:      loc[1],
				LexicalVariant: p.variant,
				Section:        section,
				Domain:         clinical.DomainFinding,
				Confidence:     score,
			})
		}
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].StartOffset != mentions[j].StartOffset {
			return mentions[i].StartOffset < mentions[j].StartOffset
		}
		return mentions[i].EndOffset > mentions[j].EndOffset
	})
	return dedupeOverlaps(mentions), nil
}

// dedupeOverlaps keeps the first of any two overlapping hits.  The input is
// sorted by start then descending length, so the longer span wins a shared
// start ("heart rate 110" over "hr 110" can never co-occur, but "o2 sat 94%"
// and "sat 94%" can).
func dedupeOverlaps(mentions []clinical.Mention) []clinical.Mention {
	if len(mentions) < 2 {
		return mentions
	}
	out := mentions[:1]
	for i := 1; i < len(mentions); i++ {
		if mentions[i].StartOffset < out[len(out)-1].EndOffset {
			continue
		}
		out = append(out, mentions[i])
	}
	return out
}

package contextual

import (
	"regexp"
	"strings"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// CompoundPenalty is the confidence deduction applied when a surface form
// had to be decomposed or rewritten before lookup.
const CompoundPenalty = 0.1

// MaxCompoundTokens is the token length of the longest modifier phrase the
// compound patterns can rewrite ("acute on chronic systolic heart failure").
const MaxCompoundTokens = 6

// Expansion is the canonical reading of a compound surface form.
type Expansion struct {
	Canonical string
	Domain    clinical.Domain
}

// embeddedCompounds maps single-token abbreviations that pack a qualified
// diagnosis into one word.
var embeddedCompounds = map[string]Expansion{
	"hfref":  {Canonical: "heart failure with reduced ejection fraction", Domain: clinical.DomainCondition},
	"hfpef":  {Canonical: "heart failure with preserved ejection fraction", Domain: clinical.DomainCondition},
	"aecopd": {Canonical: "acute exacerbation of chronic obstructive pulmonary disease", Domain: clinical.DomainCondition},
	"esrd":   {Canonical: "end stage renal disease", Domain: clinical.DomainCondition},
	"t2dm":   {Canonical: "type 2 diabetes mellitus", Domain: clinical.DomainCondition},
	"t1dm":   {Canonical: "type 1 diabetes mellitus", Domain: clinical.DomainCondition},
	"dm2":    {Canonical: "type 2 diabetes mellitus", Domain: clinical.DomainCondition},
	"dm1":    {Canonical: "type 1 diabetes mellitus", Domain: clinical.DomainCondition},
}

// ExpandCompound resolves an embedded compound abbreviation such as "hfref"
// or "t2dm".  The match is case-insensitive.
func ExpandCompound(token string) (Expansion, bool) {
	exp, ok := embeddedCompounds[strings.ToLower(token)]
	return exp, ok
}

// compoundPatterns rewrite multi-word modifier phrases onto a canonical
// diagnosis.  Each pattern must match the whole phrase.
var compoundPatterns = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)^(?:acute on chronic|acute|chronic|decompensated|compensated)\s+(?:systolic|diastolic|combined)?\s*heart failure$`), "heart failure"},
	{regexp.MustCompile(`(?i)^(?:systolic|diastolic|combined)\s+heart failure$`), "heart failure"},
	{regexp.MustCompile(`(?i)^(?:type\s*(?:2|ii)|non[- ]?insulin[- ]?dependent)\s+diabetes(?:\s+mellitus)?$`), "type 2 diabetes mellitus"},
	{regexp.MustCompile(`(?i)^(?:type\s*(?:1|i)|insulin[- ]?dependent)\s+diabetes(?:\s+mellitus)?$`), "type 1 diabetes mellitus"},
	{regexp.MustCompile(`(?i)^diabetes(?:\s+mellitus)?\s+type\s*(?:2|ii)$`), "type 2 diabetes mellitus"},
	{regexp.MustCompile(`(?i)^diabetes(?:\s+mellitus)?\s+type\s*(?:1|i)$`), "type 1 diabetes mellitus"},
	{regexp.MustCompile(`(?i)^(?:acute\s+)?(?:copd|chronic obstructive pulmonary disease)\s+(?:exacerbation|flare)$`), "chronic obstructive pulmonary disease exacerbation"},
	{regexp.MustCompile(`(?i)^(?:ckd|chronic kidney disease)\s+stage\s*(?:[1-5]|i{1,3}v?|v)[ab]?$`), "chronic kidney disease"},
	{regexp.MustCompile(`(?i)^(?:uncontrolled|poorly controlled|controlled|resistant|malignant|essential)\s+(?:htn|hypertension)$`), "hypertension"},
	{regexp.MustCompile(`(?i)^acute\s+(?:kidney|renal)\s+(?:injury|failure|insufficiency)$`), "acute kidney injury"},
	{regexp.MustCompile(`(?i)^chronic\s+(?:kidney|renal)\s+(?:failure|insufficiency|disease)$`), "chronic kidney disease"},
}

// NormalizePhrase maps a modifier-qualified phrase to its canonical form,
// preserving the qualifier's clinical meaning where the canonical term
// carries it (type 1 vs type 2 diabetes).  Returns false when no pattern
// applies.
func NormalizePhrase(phrase string) (string, bool) {
	trimmed := strings.TrimSpace(phrase)
	for _, p := range compoundPatterns {
		if p.re.MatchString(trimmed) {
			return p.canonical, true
		}
	}
	return "", false
}

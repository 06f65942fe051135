package contextual

import (
	"strings"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// abbrevWindowChars is how far around an abbreviation we look for indicator
// terms when choosing between senses.
const abbrevWindowChars = 100

// AbbrevPenalty is the confidence deduction applied to a mention whose
// surface form required sense disambiguation.
const AbbrevPenalty = 0.1

// Sense is one candidate reading of an ambiguous abbreviation.  A sense with
// no indicators is the fallback chosen when no other sense's cues appear
// nearby; a sense with a fallback marker but no expansion means the token
// should be dropped in that reading.
type Sense struct {
	Expansion  string
	Domain     clinical.Domain
	Indicators []string
}

// ambiguousSenses lists the senses of each ambiguous abbreviation in
// priority order.  Entries are matched case-insensitively against the
// surface token.
var ambiguousSenses = map[string][]Sense{
	"pe": {
		{Expansion: "pulmonary embolism", Domain: clinical.DomainCondition, Indicators: []string{
			"chest pain", "dyspnea", "shortness of breath", "ct angio", "cta",
			"d-dimer", "dvt", "anticoagul", "heparin", "tachycard", "hypox", "wells",
		}},
		{Expansion: "pleural effusion", Domain: clinical.DomainCondition, Indicators: []string{
			"effusion", "thoracentesis", "chest x", "cxr", "fluid",
		}},
		// "physical exam" reading: not a clinical entity, drop the token.
		{Expansion: "", Indicators: nil},
	},
	"mi": {
		{Expansion: "myocardial infarction", Domain: clinical.DomainCondition, Indicators: []string{
			"troponin", "chest pain", "st elevation", "st depression", "ekg", "ecg",
			"cath", "stemi", "nstemi", "coronary", "aspirin", "stent",
		}},
		{Expansion: "mitral insufficiency", Domain: clinical.DomainCondition, Indicators: []string{
			"murmur", "valve", "regurg", "echo",
		}},
		{Expansion: "myocardial infarction", Domain: clinical.DomainCondition},
	},
	"ms": {
		{Expansion: "multiple sclerosis", Domain: clinical.DomainCondition, Indicators: []string{
			"neurolog", "weakness", "numbness", "mri brain", "demyelinat", "optic",
			"relapsing", "lesion",
		}},
		{Expansion: "mitral stenosis", Domain: clinical.DomainCondition, Indicators: []string{
			"murmur", "valve", "echo", "rheumatic", "atrial",
		}},
		{Expansion: "morphine sulfate", Domain: clinical.DomainDrug, Indicators: []string{
			"mg", "pain", "prn", "dose", "iv",
		}},
		{Expansion: "", Indicators: nil},
	},
	"pt": {
		{Expansion: "physical therapy", Domain: clinical.DomainProcedure, Indicators: []string{
			"therapy", "rehab", "mobility", "gait", "ambulat", "ot",
		}},
		{Expansion: "prothrombin time", Domain: clinical.DomainFinding, Indicators: []string{
			"inr", "coumadin", "warfarin", "ptt", "coag",
		}},
		// Bare "pt" is almost always "patient"; drop it.
		{Expansion: "", Indicators: nil},
	},
	"od": {
		{Expansion: "overdose", Domain: clinical.DomainCondition, Indicators: []string{
			"opioid", "narcan", "naloxone", "ingest", "heroin", "fentanyl", "substance",
		}},
		{Expansion: "right eye", Domain: clinical.DomainAnatomy, Indicators: []string{
			"eye", "vision", "drop", "ophthal", "os ", "ou ",
		}},
		{Expansion: "", Indicators: nil},
	},
	// The remainder are common enough that the clinical reading always wins.
	"sob":  {{Expansion: "shortness of breath", Domain: clinical.DomainFinding}},
	"cad":  {{Expansion: "coronary artery disease", Domain: clinical.DomainCondition}},
	"chf":  {{Expansion: "congestive heart failure", Domain: clinical.DomainCondition}},
	"htn":  {{Expansion: "hypertension", Domain: clinical.DomainCondition}},
	"dm":   {{Expansion: "diabetes mellitus", Domain: clinical.DomainCondition}},
	"copd": {{Expansion: "chronic obstructive pulmonary disease", Domain: clinical.DomainCondition}},
	"ckd":  {{Expansion: "chronic kidney disease", Domain: clinical.DomainCondition}},
	"gerd": {{Expansion: "gastroesophageal reflux disease", Domain: clinical.DomainCondition}},
	"bph":  {{Expansion: "benign prostatic hyperplasia", Domain: clinical.DomainCondition}},
}

// Disambiguator resolves ambiguous clinical abbreviations using indicator
// terms found in the surrounding text.  It is stateless and safe for
// concurrent use.
type Disambiguator struct {
	senses map[string][]Sense
	window int
}

// NewDisambiguator returns a Disambiguator loaded with the built-in sense
// tables.
func NewDisambiguator() *Disambiguator {
	return &Disambiguator{senses: ambiguousSenses, window: abbrevWindowChars}
}

// IsAmbiguous reports whether the token has a sense table.
func (d *Disambiguator) IsAmbiguous(token string) bool {
	_, ok := d.senses[strings.ToLower(token)]
	return ok
}

// Resolve picks the sense for the abbreviation at [start, end) in text.  The
// first sense whose indicator appears within the window wins; failing that,
// the sense with no indicators is the fallback.  The second return is false
// when the token has no sense table or no sense applies.  A resolved Sense
// with an empty Expansion means the token is not a clinical entity in
// context and should be discarded.
func (d *Disambiguator) Resolve(text string, start, end int) (Sense, bool) {
	token := strings.ToLower(text[start:end])
	senses, ok := d.senses[token]
	if !ok {
		return Sense{}, false
	}

	lo := start - d.window
	if lo < 0 {
		lo = 0
	}
	hi := end + d.window
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:hi])

	var fallback *Sense
	for i := range senses {
		s := senses[i]
		if len(s.Indicators) == 0 {
			if fallback == nil {
				fallback = &senses[i]
			}
			continue
		}
		for _, ind := range s.Indicators {
			if strings.Contains(window, ind) {
				return s, true
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Sense{}, false
}

// Package sectionizer segments clinical note text into labeled, contiguous
// section spans using header patterns, and scores how well a clinical domain
// fits each section.  Segmentation is a covering partition: every byte of the
// document belongs to exactly one span, with "unspecified" for text outside
// any recognized section.
package sectionizer

import (
	"regexp"
	"sort"

	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Canonical section labels.
const (
	SectionChiefComplaint        = "chief_complaint"
	SectionHPI                   = "history_of_present_illness"
	SectionPastMedicalHistory    = "past_medical_history"
	SectionPastSurgicalHistory   = "past_surgical_history"
	SectionFamilyHistory         = "family_history"
	SectionSocialHistory         = "social_history"
	SectionReviewOfSystems       = "review_of_systems"
	SectionAllergies             = "allergies"
	SectionMedications           = "medications"
	SectionHomeMedications       = "home_medications"
	SectionDischargeMedications  = "discharge_medications"
	SectionVitalSigns            = "vital_signs"
	SectionPhysicalExam          = "physical_exam"
	SectionLabs                  = "labs"
	SectionImaging               = "imaging"
	SectionEKG                   = "ekg"
	SectionStudies               = "studies"
	SectionAssessmentPlan        = "assessment_and_plan"
	SectionAssessment            = "assessment"
	SectionPlan                  = "plan"
	SectionDiagnosis             = "diagnosis"
	SectionDischargeDiagnosis    = "discharge_diagnosis"
	SectionHospitalCourse        = "hospital_course"
	SectionProcedures            = "procedures"
	SectionFollowUp              = "follow_up"
	SectionDischargeInstructions = "discharge_instructions"
)

// headerPattern binds a header regex to its canonical section label.  Order
// matters: more specific patterns come first so "DISCHARGE MEDICATIONS:" is
// never swallowed by "MEDICATIONS:".
type headerPattern struct {
	re    *regexp.Regexp
	label string
}

// Headers match at line start, case-insensitively, and require a trailing
// colon so prose mentions of "plan" or "labs" never open a section.
func compileHeader(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:` + pattern + `)[ \t]*:`)
}

var defaultHeaderPatterns = []headerPattern{
	{compileHeader(`CHIEF\s+COMPLAINT|CC|C/C|REASON\s+FOR\s+(?:VISIT|ADMISSION)`), SectionChiefComplaint},
	{compileHeader(`HISTORY\s+OF\s+(?:THE\s+)?PRESENT(?:ING)?\s+ILLNESS|HPI|H\.P\.I\.`), SectionHPI},
	{compileHeader(`PAST\s+MEDICAL\s+HISTORY|PMHX?|P\.M\.H\.|MEDICAL\s+HISTORY`), SectionPastMedicalHistory},
	{compileHeader(`PAST\s+SURGICAL\s+HISTORY|PSHX?|SURGICAL\s+HISTORY`), SectionPastSurgicalHistory},
	{compileHeader(`FAMILY\s+HISTORY|FHX?|F\.H\.`), SectionFamilyHistory},
	{compileHeader(`SOCIAL\s+HISTORY|SHX|S\.H\.`), SectionSocialHistory},
	{compileHeader(`REVIEW\s+OF\s+SYSTEMS|ROS|R\.O\.S\.`), SectionReviewOfSystems},
	{compileHeader(`ALLERGIES|DRUG\s+ALLERGIES|KNOWN\s+ALLERGIES`), SectionAllergies},
	{compileHeader(`DISCHARGE\s+MEDICATIONS?|D/C\s+MEDS?`), SectionDischargeMedications},
	{compileHeader(`HOME\s+MEDICATIONS?|OUTPATIENT\s+MEDICATIONS?`), SectionHomeMedications},
	{compileHeader(`MEDICATIONS?|CURRENT\s+MEDICATIONS?`), SectionMedications},
	{compileHeader(`VITAL\s+SIGNS?|VITALS?`), SectionVitalSigns},
	{compileHeader(`PHYSICAL\s+EXAM(?:INATION)?|P\.E\.`), SectionPhysicalExam},
	{compileHeader(`LAB(?:ORATORY)?\s*(?:RESULTS?|DATA|VALUES?)?|LABS`), SectionLabs},
	{compileHeader(`IMAGING|RADIOLOGY`), SectionImaging},
	{compileHeader(`EKG|ECG|ELECTROCARDIOGRAM`), SectionEKG},
	{compileHeader(`STUDIES|DIAGNOSTIC\s+STUDIES`), SectionStudies},
	{compileHeader(`ASSESSMENT\s*(?:AND|&|/)\s*PLAN|A\s*/\s*P`), SectionAssessmentPlan},
	{compileHeader(`ASSESSMENT|IMPRESSION|CLINICAL\s+IMPRESSION`), SectionAssessment},
	{compileHeader(`PLAN|TREATMENT\s+PLAN|MANAGEMENT`), SectionPlan},
	{compileHeader(`DISCHARGE\s+DIAGNOSIS|DISCHARGE\s+DX|FINAL\s+DIAGNOSIS`), SectionDischargeDiagnosis},
	{compileHeader(`DIAGNOSIS|DIAGNOSES|PROBLEM\s+LIST|ADMISSION\s+DIAGNOSIS|ADMITTING\s+DIAGNOSIS`), SectionDiagnosis},
	{compileHeader(`HOSPITAL\s+COURSE|CLINICAL\s+COURSE`), SectionHospitalCourse},
	{compileHeader(`PROCEDURES?|OPERATIONS?|INTERVENTIONS?`), SectionProcedures},
	{compileHeader(`FOLLOW[\s-]?UP|F/U|DISPOSITION`), SectionFollowUp},
	{compileHeader(`DISCHARGE\s+INSTRUCTIONS?|PATIENT\s+INSTRUCTIONS?`), SectionDischargeInstructions},
}

// ---------------------------------------------------------------------------
// Segmenter
// ---------------------------------------------------------------------------

// Segmenter splits note text into section spans.  The zero-cost construction
// shares the compiled default patterns; custom header tables replace them.
type Segmenter struct {
	patterns []headerPattern
}

// New returns a Segmenter with the built-in clinical header table.
func New() *Segmenter {
	return &Segmenter{patterns: defaultHeaderPatterns}
}

// NewWithHeaders returns a Segmenter whose header table is built from the
// supplied label → pattern map.  Patterns follow the same line-start,
// colon-terminated convention as the defaults.
func NewWithHeaders(headers map[string]string) *Segmenter {
	patterns := make([]headerPattern, 0, len(headers))
	labels := make([]string, 0, len(headers))
	for label := range headers {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		patterns = append(patterns, headerPattern{compileHeader(headers[label]), label})
	}
	return &Segmenter{patterns: patterns}
}

// Segment splits text into contiguous labeled spans covering [0, len(text)).
// Text before the first recognized header, or the whole document when no
// header matches, carries the "unspecified" label.  Segment never fails.
func (s *Segmenter) Segment(text string) []clinical.SectionSpan {
	if text == "" {
		return []clinical.SectionSpan{}
	}

	type headerHit struct {
		start int
		label string
	}

	var hits []headerHit
	seen := make(map[int]struct{})
	for _, p := range s.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if _, dup := seen[loc[0]]; dup {
				continue
			}
			seen[loc[0]] = struct{}{}
			hits = append(hits, headerHit{start: loc[0], label: p.label})
		}
	}

	if len(hits) == 0 {
		return []clinical.SectionSpan{{Label: clinical.SectionUnspecified, Start: 0, End: len(text)}}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	var spans []clinical.SectionSpan
	if hits[0].start > 0 {
		spans = append(spans, clinical.SectionSpan{
			Label: clinical.SectionUnspecified,
			Start: 0,
			End:   hits[0].start,
		})
	}
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		spans = append(spans, clinical.SectionSpan{Label: h.label, Start: h.start, End: end})
	}
	return spans
}

// At returns the label of the span containing offset.  Offsets outside the
// document fall back to "unspecified".
func At(spans []clinical.SectionSpan, offset int) string {
	for _, sp := range spans {
		if offset >= sp.Start && offset < sp.End {
			return sp.Label
		}
	}
	return clinical.SectionUnspecified
}

// ---------------------------------------------------------------------------
// Section-domain affinity
// ---------------------------------------------------------------------------

// sectionDomainAffinity states how expected each domain is inside a section.
// Unlisted pairs fall back to a low default; unknown sections are neutral.
var sectionDomainAffinity = map[string]map[clinical.Domain]float64{
	SectionChiefComplaint: {
		clinical.DomainCondition: 0.9,
		clinical.DomainFinding:   0.8,
	},
	SectionHPI: {
		clinical.DomainCondition: 0.9,
		clinical.DomainFinding:   0.7,
		clinical.DomainDrug:      0.5,
	},
	SectionPastMedicalHistory: {
		clinical.DomainCondition: 1.0,
		clinical.DomainProcedure: 0.6,
	},
	SectionPastSurgicalHistory: {
		clinical.DomainProcedure: 1.0,
		clinical.DomainCondition: 0.4,
	},
	SectionFamilyHistory: {
		clinical.DomainCondition: 1.0,
	},
	SectionSocialHistory: {
		clinical.DomainFinding:   0.8,
		clinical.DomainCondition: 0.5,
	},
	SectionAllergies: {
		clinical.DomainDrug:    1.0,
		clinical.DomainFinding: 0.6,
	},
	SectionMedications:          {clinical.DomainDrug: 1.0},
	SectionHomeMedications:      {clinical.DomainDrug: 1.0},
	SectionDischargeMedications: {clinical.DomainDrug: 1.0},
	SectionVitalSigns: {
		clinical.DomainFinding: 1.0,
	},
	SectionPhysicalExam: {
		clinical.DomainFinding:   1.0,
		clinical.DomainCondition: 0.6,
		clinical.DomainAnatomy:   0.5,
	},
	SectionLabs: {
		clinical.DomainFinding: 1.0,
	},
	SectionImaging: {
		clinical.DomainProcedure: 0.8,
		clinical.DomainFinding:   0.7,
		clinical.DomainCondition: 0.5,
	},
	SectionEKG: {
		clinical.DomainProcedure: 0.7,
		clinical.DomainFinding:   0.8,
		clinical.DomainCondition: 0.5,
	},
	SectionAssessment: {
		clinical.DomainCondition: 1.0,
		clinical.DomainFinding:   0.6,
	},
	SectionAssessmentPlan: {
		clinical.DomainCondition: 0.9,
		clinical.DomainDrug:      0.7,
		clinical.DomainProcedure: 0.6,
	},
	SectionPlan: {
		clinical.DomainDrug:      0.9,
		clinical.DomainProcedure: 0.8,
		clinical.DomainCondition: 0.5,
	},
	SectionDiagnosis:          {clinical.DomainCondition: 1.0},
	SectionDischargeDiagnosis: {clinical.DomainCondition: 1.0},
	SectionHospitalCourse: {
		clinical.DomainCondition: 0.8,
		clinical.DomainDrug:      0.7,
		clinical.DomainProcedure: 0.7,
	},
	SectionProcedures: {clinical.DomainProcedure: 1.0},
}

// DomainAffinity returns how expected a domain is inside a section, in [0,1].
// Sections without an affinity entry are neutral (0.5).
func DomainAffinity(section string, domain clinical.Domain) float64 {
	affinities, ok := sectionDomainAffinity[section]
	if !ok {
		return 0.5
	}
	if a, ok := affinities[domain]; ok {
		return a
	}
	return 0.3
}

// ConfidenceModifier maps section-domain affinity to a multiplicative
// confidence adjustment in [0.8, 1.1]: high affinity boosts slightly, low
// affinity dampens slightly.
func ConfidenceModifier(section string, domain clinical.Domain) float64 {
	affinity := DomainAffinity(section, domain)
	switch {
	case affinity >= 0.8:
		return 1.0 + (affinity-0.8)*0.5 // 1.0 .. 1.1
	case affinity >= 0.4:
		return 0.95 + (affinity-0.4)*0.125 // 0.95 .. 1.0
	default:
		return 0.8 + affinity*(0.1/0.3) // 0.8 .. 0.9
	}
}

package contextual

import "regexp"

// Trigger tables for the assertion state machine.  All scans are restricted
// to the clause enclosing the mention; see clause.go for boundary rules.

// preNegation triggers negate terms that follow them.
var preNegation = compileAlternates([]string{
	`no`,
	`not`,
	`without`,
	`deny`,
	`denies`,
	`denied`,
	`negative for`,
	`rules out`,
	`ruled out`,
	`r/o`,
	`free of`,
	`absence of`,
	`absent`,
	`no evidence of`,
	`no signs of`,
	`no symptoms of`,
	`no history of`,
	`no known`,
	`never had`,
	`never`,
	`failed to reveal`,
	`tested negative`,
	`excludes?`,
	`excluded`,
	`excluding`,
	`unremarkable`,
	`was not`,
	`were not`,
	`did not have`,
	`does not have`,
	`has no`,
	`have no`,
	`no apparent`,
	`no acute`,
	`no significant`,
	`no obvious`,
	`resolved`,
	`resolution of`,
})

// postNegation triggers negate terms that precede them.
var postNegation = compileAlternates([]string{
	`unlikely`,
	`has been ruled out`,
	`was ruled out`,
	`were ruled out`,
	`is ruled out`,
	`not present`,
	`not seen`,
	`not observed`,
	`not identified`,
	`not detected`,
	`not demonstrated`,
	`not found`,
	`was negative`,
	`were negative`,
	`is negative`,
	`came back negative`,
})

// pseudoNegation spans look like negation but assert nothing about the
// mention; any negation trigger they overlap is suppressed.
var pseudoNegation = compileAlternates([]string{
	`no increase`,
	`no change`,
	`no interval change`,
	`no significant change`,
	`no further`,
	`not ruled out`,
	`not been ruled out`,
	`cannot be ruled out`,
	`gram negative`,
	`not certain if`,
	`not certain whether`,
	`not necessarily`,
	`without difficulty`,
	`not only`,
})

// uncertainty triggers mark the mention as possible rather than absent or
// present.
var uncertainty = compileAlternates([]string{
	`possible`,
	`possibly`,
	`probable`,
	`probably`,
	`likely`,
	`suspected`,
	`suspects?`,
	`suspicious`,
	`suspicion`,
	`suggestive`,
	`questionable`,
	`uncertain`,
	`unclear`,
	`equivocal`,
	`cannot be excluded`,
	`cannot be ruled out`,
	`cannot rule out`,
	`cannot exclude`,
	`not been ruled out`,
	`concern for`,
	`concerning for`,
	`worrisome`,
	`may be`,
	`may have`,
	`may represent`,
	`might be`,
	`might have`,
	`might represent`,
	`could be`,
	`could represent`,
	`rule out`,
	`vs`,
	`versus`,
})

// past triggers place the mention before the current encounter.
var pastTriggers = compileAlternates([]string{
	`history of`,
	`h/o`,
	`hx of`,
	`past medical history`,
	`pmh`,
	`previous`,
	`previously`,
	`former`,
	`formerly`,
	`prior`,
	`remote`,
	`childhood`,
	`years? ago`,
	`months? ago`,
	`weeks? ago`,
	`in (?:19|20)\d{2}`,
	`since (?:19|20)\d{2}`,
	`resolved`,
	`quiescent`,
	`inactive`,
	`remission`,
	`s/p`,
	`status post`,
})

// currentTriggers override past cues in the preceding context.
var currentTriggers = compileAlternates([]string{
	`currently?`,
	`active`,
	`acutely?`,
	`ongoing`,
	`presenting`,
	`newly?`,
	`recently?`,
	`today`,
	`this (?:morning|afternoon|evening)`,
	`now`,
	`worsening`,
	`exacerbation`,
})

// futureTriggers mark hypothetical or anticipated findings.
var futureTriggers = compileAlternates([]string{
	`watch for`,
	`monitor for`,
	`return if`,
	`return precautions`,
	`come back if`,
	`in case of`,
	`in the event of`,
	`if (?:you|he|she|they) develops?`,
	`should (?:you|he|she|they) develop`,
	`risk of`,
	`risk for`,
	`at risk`,
	`prophylaxis`,
	`will need`,
	`planned`,
	`scheduled for`,
})

// familyTriggers shift the experiencer from patient to family.
var familyTriggers = compileAlternates([]string{
	`family history`,
	`fhx?`,
	`mother`,
	`father`,
	`parents?`,
	`siblings?`,
	`brother`,
	`sister`,
	`grandmother`,
	`grandfather`,
	`grandparents?`,
	`aunt`,
	`uncle`,
	`cousin`,
	`relatives?`,
	`maternal`,
	`paternal`,
	`son`,
	`daughter`,
})

// otherTriggers shift the experiencer to a non-family third party.
var otherTriggers = compileAlternates([]string{
	`roommate`,
	`caregiver`,
	`neighbor`,
	`coworker`,
	`co-worker`,
	`friend`,
	`donor`,
	`contacts?`,
})

// compileAlternates joins word-bounded alternates into one case-insensitive
// pattern.  Alternates stay in list order so longer phrases must be listed
// before their prefixes when overlap matters.
func compileAlternates(terms []string) *regexp.Regexp {
	pattern := `(?i)\b(?:`
	for i, t := range terms {
		if i > 0 {
			pattern += `|`
		}
		pattern += t
	}
	pattern += `)\b`
	return regexp.MustCompile(pattern)
}

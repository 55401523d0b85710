package testparser

import "regexp"

var (
	cspellSummaryRegex = regexp.MustCompile(`CSpell:\s*Files checked:\s*(\d+),\s*Issues found:\s*(\d+)`)
	cspellIssueRegex   = regexp.MustCompile(`(?m):\d+:\d+\s+-\s+Unknown word\s+\(`)
)

// CSpellParser turns a CSpell run into a single "cspell_spelling" entry.
type CSpellParser struct{}

// Name returns the parser name.
func (p *CSpellParser) Name() string {
	return "cspell"
}

// Parse decides the spelling outcome from CSpell output:
//
//	src/app.ts:12:9 - Unknown word (recieve)
//	CSpell: Files checked: 42, Issues found: 1 in 1 file
func (p *CSpellParser) Parse(output string) Results {
	output = cleanOutput(output)
	match := cspellSummaryRegex.FindStringSubmatch(output)
	if match == nil {
		return Results{}
	}
	if atoi(match[2]) > 0 || cspellIssueRegex.MatchString(output) {
		return Results{"cspell_spelling": Failed}
	}
	return Results{"cspell_spelling": Passed}
}

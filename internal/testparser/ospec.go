package testparser

import "regexp"

var (
	ospecPassedRegex = regexp.MustCompile(`(?i)\bAll\s+(\d+)\s+assertions\s+passed\b`)
	ospecFailedRegex = regexp.MustCompile(`(?i)\b(\d+)\s+(?:out\s+of\s+\d+\s+)?assertions\s+failed\b`)
)

// OspecParser parses the ospec runner summary. ospec reports assertions,
// not tests, so the whole run becomes a single "ospec" entry.
type OspecParser struct{}

// Name returns the parser name.
func (p *OspecParser) Name() string {
	return "ospec"
}

// Parse extracts the run outcome from ospec output:
//
//	All 42 assertions passed (old style total: 42)
//	2 out of 42 assertions failed
func (p *OspecParser) Parse(output string) Results {
	output = cleanOutput(output)
	if match := ospecFailedRegex.FindStringSubmatch(output); match != nil && atoi(match[1]) > 0 {
		return Results{"ospec": Failed}
	}
	if ospecPassedRegex.MatchString(output) {
		return Results{"ospec": Passed}
	}
	return Results{}
}

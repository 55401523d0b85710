package testparser

import "regexp"

var (
	stylelintInvokeRegex  = regexp.MustCompile(`(?im)^\s*(?:[>$]\s*)?(?:npx\s+)?stylelint\b`)
	stylelintProblemRegex = regexp.MustCompile(`(?m)^\s+\d+:\d+\s+[✖×]\s+`)
)

// StylelintParser turns a stylelint run into a single "stylelint" entry.
type StylelintParser struct{}

// Name returns the parser name.
func (p *StylelintParser) Name() string {
	return "stylelint"
}

// Parse decides the lint outcome from stylelint output:
//
//	> stylelint "**/*.css"
//
//	src/app.css
//	  3:5  ✖  Unexpected unknown property "colr"  property-no-unknown
func (p *StylelintParser) Parse(output string) Results {
	output, invoked := toolOutput(output, stylelintInvokeRegex)
	if !invoked {
		return Results{}
	}
	if stylelintProblemRegex.MatchString(output) || npmErrorRegex.MatchString(output) || exitFailed(output) {
		return Results{"stylelint": Failed}
	}
	return Results{"stylelint": Passed}
}

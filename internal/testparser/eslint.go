package testparser

import "regexp"

// Static regexes for ESLint output parsing.
var (
	eslintSummaryRegex = regexp.MustCompile(`✖\s+(\d+)\s+problems?\s+\((\d+)\s+errors?,\s*(\d+)\s+warnings?\)`)
	eslintInvokeRegex  = regexp.MustCompile(`(?im)^\s*(?:[>$]\s*)?(?:npx\s+)?eslint\b`)
	eslintErrorRegex   = regexp.MustCompile(`(?m)^\s+\d+:\d+\s+error\s+`)
	npmErrorRegex      = regexp.MustCompile(`(?m)^npm (?:ERR!|error)`)
)

// ESLintParser turns an ESLint run into a single "eslint_check" entry.
type ESLintParser struct{}

// Name returns the parser name.
func (p *ESLintParser) Name() string {
	return "eslint"
}

// Parse decides the lint outcome from ESLint output.
// ESLint prints per-file problems and a summary like:
//
//	/src/app.js
//	  3:7  error  'x' is assigned a value but never used  no-unused-vars
//
//	✖ 1 problem (1 error, 0 warnings)
//
// A clean run prints nothing, so an "eslint" invocation without any
// failure token counts as a pass.
func (p *ESLintParser) Parse(output string) Results {
	output = cleanOutput(output)

	if match := eslintSummaryRegex.FindStringSubmatch(output); match != nil {
		if atoi(match[2]) > 0 {
			return Results{"eslint_check": Failed}
		}
		return Results{"eslint_check": Passed}
	}

	output, invoked := toolOutput(output, eslintInvokeRegex)
	if !invoked {
		return Results{}
	}
	if eslintErrorRegex.MatchString(output) || npmErrorRegex.MatchString(output) || exitFailed(output) {
		return Results{"eslint_check": Failed}
	}
	return Results{"eslint_check": Passed}
}

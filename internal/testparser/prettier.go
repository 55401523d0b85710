package testparser

import (
	"regexp"
	"strings"
)

var prettierInvokeRegex = regexp.MustCompile(`(?im)^\s*(?:[>$]\s*)?(?:npx\s+)?prettier\b|Checking formatting\.\.\.|use Prettier code style|Code style issues found`)

// PrettierParser turns a "prettier --check" run into a single
// "prettier_format" entry.
type PrettierParser struct{}

// Name returns the parser name.
func (p *PrettierParser) Name() string {
	return "prettier"
}

// Parse decides the formatting outcome from Prettier output:
//
//	Checking formatting...
//	[warn] src/app.ts
//	[warn] Code style issues found in the above file. Run Prettier with --write to fix.
//
// or, on success:
//
//	Checking formatting...
//	All matched files use Prettier code style!
func (p *PrettierParser) Parse(output string) Results {
	output, ran := toolOutput(output, prettierInvokeRegex)
	if !ran {
		return Results{}
	}
	switch {
	case strings.Contains(output, "Code style issues found"),
		strings.Contains(output, "Checking formatting...") && strings.Contains(output, "[warn] "):
		return Results{"prettier_format": Failed}
	case strings.Contains(output, "All matched files use Prettier code style!"):
		return Results{"prettier_format": Passed}
	case strings.Contains(output, "Checking formatting...") && exitFailed(output):
		return Results{"prettier_format": Failed}
	}
	return Results{}
}

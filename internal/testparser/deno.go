package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Deno output parsing.
var (
	denoCaseRegex = regexp.MustCompile(`^(.+?)\s+\.\.\.\s+(ok|FAILED|ignored)\s*(?:\(\d+(?:\.\d+)?\s*m?s\))?\s*$`)
	denoPipeRegex = regexp.MustCompile(`(\d+) passed(?:\s*\(\d+ steps?\))?\s*\|\s*(\d+) failed(?:\s*(?:\(\d+ steps?\))?\s*\|\s*(\d+) ignored)?`)
	denoSemiRegex = regexp.MustCompile(`(\d+) passed;\s*(\d+) failed(?:;\s*(\d+) ignored)?`)
	// unittest's verbose "test_add (pkg.Class) ... ok" looks the same.
	denoUnittestName = regexp.MustCompile(`^\w+ \([\w.]+\)$`)
)

// DenoParser parses Deno test output.
type DenoParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *DenoParser) Name() string {
	return "deno"
}

// Parse extracts test outcomes from Deno test output.
// Deno test outputs lines like:
//
//	adds numbers ... ok (3ms)
//	divides by zero ... FAILED (1ms)
//	ok | 47 passed | 0 failed (123ms)
//	FAILED | 45 passed (3 steps) | 2 failed | 1 ignored (123ms)
//
// Or in older versions:
//
//	47 passed; 2 failed; 3 ignored
//
// The semicolon form is shared with cargo's "test result:" line, which is
// left to the cargo parser.
func (p *DenoParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "test ") || strings.Contains(trimmed, "test result:") {
			continue
		}
		if match := denoPipeRegex.FindStringSubmatch(trimmed); match != nil {
			summary = newCounts(atoi(match[1]), atoi(match[2]), atoi(match[3]))
			hasSummary = true
			continue
		}
		if match := denoSemiRegex.FindStringSubmatch(trimmed); match != nil {
			summary = newCounts(atoi(match[1]), atoi(match[2]), atoi(match[3]))
			hasSummary = true
			continue
		}
		match := denoCaseRegex.FindStringSubmatch(trimmed)
		if match == nil || denoUnittestName.MatchString(match[1]) {
			continue
		}
		switch match[2] {
		case "ok":
			cases[match[1]] = Passed
		case "FAILED":
			cases[match[1]] = Failed
		case "ignored":
			cases[match[1]] = Skipped
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for TestNG output parsing.
var (
	testngCaseRegex    = regexp.MustCompile(`^(?:\[testng\]\s+)?(PASSED|FAILED|SKIPPED):\s+(\S.*)$`)
	testngSummaryRegex = regexp.MustCompile(`Total tests run:\s*(\d+),\s*(?:Passes:\s*\d+,\s*)?Failures:\s*(\d+),\s*Skips:\s*(\d+)`)
)

// TestNGParser parses TestNG's default reporter output.
type TestNGParser struct{}

// Name returns the parser name.
func (p *TestNGParser) Name() string {
	return "testng"
}

// Parse extracts test outcomes from TestNG output.
// TestNG outputs lines like:
//
//	[testng] PASSED: adds
//	[testng] FAILED: divides
//	Total tests run: 3, Passes: 1, Failures: 1, Skips: 1
//
// Suites are added up.
func (p *TestNGParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := testngCaseRegex.FindStringSubmatch(trimmed); match != nil {
			name := strings.TrimSpace(match[2])
			switch match[1] {
			case "PASSED":
				cases[name] = Passed
			case "FAILED":
				cases[name] = Failed
			case "SKIPPED":
				cases[name] = Skipped
			}
			continue
		}
		if match := testngSummaryRegex.FindStringSubmatch(trimmed); match != nil {
			run := atoi(match[1])
			failed := atoi(match[2])
			skipped := atoi(match[3])
			passed := run - failed - skipped
			if passed < 0 {
				passed = 0
			}
			block := newCounts(passed, failed, skipped)
			summary.Add(&block)
			hasSummary = true
		}
	}

	if !hasSummary {
		return cases
	}
	return fillGap(cases, summary, p.Name())
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for PHPUnit output parsing.
var (
	phpunitOKRegex      = regexp.MustCompile(`^OK\s+\((\d+)\s+tests?,\s*\d+\s+assertions?\)`)
	phpunitSummaryRegex = regexp.MustCompile(`^Tests:\s*(\d+),\s*Assertions:\s*\d+(.*)$`)
	phpunitDetailRegex  = regexp.MustCompile(`(Errors|Failures|Skipped|Incomplete|Risky|Warnings|Deprecations|Notices):\s*(\d+)`)
	phpunitFailedRegex  = regexp.MustCompile(`^\d+\)\s+([\w\\]+::\w+)`)
	phpunitSectionRegex = regexp.MustCompile(`^There (?:was|were)\s+\d+\s+(\w+)`)
)

// PHPUnitParser parses PHPUnit output.
type PHPUnitParser struct{}

// Name returns the parser name.
func (p *PHPUnitParser) Name() string {
	return "phpunit"
}

// Parse extracts test outcomes from PHPUnit output.
// PHPUnit outputs either:
//
//	OK (12 tests, 30 assertions)
//
// or:
//
//	There was 1 failure:
//
//	1) Tests\CalcTest::testDivide
//	Failed asserting that 3 matches expected 2.
//
//	FAILURES!
//	Tests: 12, Assertions: 30, Failures: 1, Skipped: 2.
//
// Tests listed under the failure and error sections are kept by name and
// the remaining tests become placeholders.
// Incomplete tests count as skipped; risky and warning counts are ignored.
func (p *PHPUnitParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false
	failing := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := phpunitSectionRegex.FindStringSubmatch(trimmed); match != nil {
			word := strings.ToLower(match[1])
			failing = strings.HasPrefix(word, "failure") || strings.HasPrefix(word, "error")
			continue
		}
		if match := phpunitOKRegex.FindStringSubmatch(trimmed); match != nil {
			summary = newCounts(atoi(match[1]), 0, 0)
			hasSummary = true
			continue
		}
		if match := phpunitSummaryRegex.FindStringSubmatch(trimmed); match != nil {
			details := make(map[string]int)
			for _, d := range phpunitDetailRegex.FindAllStringSubmatch(match[2], -1) {
				details[d[1]] = atoi(d[2])
			}
			tests := atoi(match[1])
			failed := details["Failures"] + details["Errors"]
			skipped := details["Skipped"] + details["Incomplete"]
			passed := tests - failed - skipped
			if passed < 0 {
				passed = 0
			}
			summary = newCounts(passed, failed, skipped)
			hasSummary = true
			continue
		}
		if !failing {
			continue
		}
		if match := phpunitFailedRegex.FindStringSubmatch(trimmed); match != nil {
			cases[match[1]] = Failed
		}
	}

	if !hasSummary {
		return cases
	}
	return fillGap(cases, summary, p.Name())
}

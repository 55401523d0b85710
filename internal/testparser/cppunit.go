package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for CppUnit output parsing.
var (
	cppunitOKRegex      = regexp.MustCompile(`^OK\s*\((\d+)\s+tests?\)$`)
	cppunitRunRegex     = regexp.MustCompile(`^Run:\s*(\d+)\s+Failures:\s*(\d+)\s+Errors:\s*(\d+)`)
	cppunitThereRegex   = regexp.MustCompile(`^There (?:were|was)\s+(\d+)\s+(failures?|errors?):?`)
	cppunitNamedRegex   = regexp.MustCompile(`^\d+\)\s+(?:test:\s*)?(\w+(?:::\w+)+)`)
	cppunitTestNameLine = regexp.MustCompile(`^-?\s*Test name:\s*(\w+(?:::\w+)+)`)
)

// CppUnitParser parses CppUnit's TextUi output.
type CppUnitParser struct{}

// Name returns the parser name.
func (p *CppUnitParser) Name() string {
	return "cppunit"
}

// Parse extracts test outcomes from CppUnit output.
// CppUnit outputs either:
//
//	OK (12 tests)
//
// or:
//
//	!!!FAILURES!!!
//	Test Results:
//	Run:  12   Failures: 1   Errors: 0
//
//	1) test: CalcTest::testDivide (F) line: 42 calc_test.cpp
//
// Named failures are kept and the remaining tests become placeholders.
func (p *CppUnitParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false
	reported := 0

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := cppunitOKRegex.FindStringSubmatch(trimmed); match != nil {
			summary = newCounts(atoi(match[1]), 0, 0)
			hasSummary = true
			continue
		}
		if match := cppunitRunRegex.FindStringSubmatch(trimmed); match != nil {
			run := atoi(match[1])
			failed := atoi(match[2]) + atoi(match[3])
			passed := run - failed
			if passed < 0 {
				passed = 0
			}
			summary = newCounts(passed, failed, 0)
			hasSummary = true
			continue
		}
		if match := cppunitThereRegex.FindStringSubmatch(trimmed); match != nil {
			reported += atoi(match[1])
			continue
		}
		if match := cppunitNamedRegex.FindStringSubmatch(trimmed); match != nil {
			cases[match[1]] = Failed
			continue
		}
		if match := cppunitTestNameLine.FindStringSubmatch(trimmed); match != nil {
			cases[match[1]] = Failed
		}
	}

	// PHPUnit prints "There was 1 failure:" too; only trust the count next
	// to CppUnit's own markers.
	if !hasSummary && reported > 0 && (len(cases) > 0 || strings.Contains(output, "!!!FAILURES!!!")) {
		summary = newCounts(0, reported, 0)
		hasSummary = true
	}
	if !hasSummary {
		return cases
	}
	return fillGap(cases, summary, p.Name())
}

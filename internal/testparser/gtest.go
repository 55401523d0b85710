package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for GoogleTest output parsing.
var (
	gtestResultRegex  = regexp.MustCompile(`^\[\s*(OK|FAILED|SKIPPED|DISABLED)\s*\]\s+([^\s(,]+)`)
	gtestRunRegex     = regexp.MustCompile(`^\[\s*RUN\s*\]\s+(\S+)`)
	gtestRanRegex     = regexp.MustCompile(`^\[=+\]\s+(\d+)\s+tests?\s+from\s+.*\bran\b`)
	gtestPassedRegex  = regexp.MustCompile(`^\[\s*PASSED\s*\]\s+(\d+)\s+tests?`)
	gtestFailedRegex  = regexp.MustCompile(`^\[\s*FAILED\s*\]\s+(\d+)\s+tests?,`)
	gtestSkippedRegex = regexp.MustCompile(`^\[\s*SKIPPED\s*\]\s+(\d+)\s+tests?,`)
	gtestNumberRegex  = regexp.MustCompile(`^\d+$`)
)

// GTestParser parses GoogleTest console output.
type GTestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *GTestParser) Name() string {
	return "gtest"
}

// Parse extracts test outcomes from GoogleTest output.
// GoogleTest outputs lines like:
//
//	[ RUN      ] CalcTest.Adds
//	[       OK ] CalcTest.Adds (0 ms)
//	[ RUN      ] CalcTest.Divides
//	[  FAILED  ] CalcTest.Divides (1 ms)
//	[==========] 2 tests from 1 test suite ran. (1 ms total)
//	[  PASSED  ] 1 test.
//	[  FAILED  ] 1 test, listed below:
//	[  FAILED  ] CalcTest.Divides
//
// A RUN without a result line (the binary crashed) is left out; the
// failure listing after the summary repeats names already seen. When the
// named results cover too little of the summary, the summary is expanded.
func (p *GTestParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if gtestRunRegex.MatchString(trimmed) {
			continue
		}
		if match := gtestPassedRegex.FindStringSubmatch(trimmed); match != nil {
			summary.Passed = atoi(match[1])
			hasSummary = true
			continue
		}
		if match := gtestFailedRegex.FindStringSubmatch(trimmed); match != nil {
			summary.Failed = atoi(match[1])
			hasSummary = true
			continue
		}
		if match := gtestSkippedRegex.FindStringSubmatch(trimmed); match != nil {
			summary.Skipped = atoi(match[1])
			hasSummary = true
			continue
		}
		if gtestRanRegex.MatchString(trimmed) {
			continue
		}
		match := gtestResultRegex.FindStringSubmatch(trimmed)
		if match == nil || gtestNumberRegex.MatchString(match[2]) {
			continue
		}
		name := match[2]
		switch match[1] {
		case "OK":
			cases[name] = Passed
		case "FAILED":
			cases[name] = Failed
		case "SKIPPED", "DISABLED":
			cases[name] = Skipped
		}
	}

	if !hasSummary {
		return cases
	}
	summary.Total = summary.Passed + summary.Failed + summary.Skipped
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

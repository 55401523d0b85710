package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for pytest output parsing.
// Compiled once at package init for performance.
var (
	pytestVerboseRegex = regexp.MustCompile(`^(\S+::\S.*?)\s+(PASSED|FAILED|SKIPPED|ERROR|XFAIL|XPASS)\b`)
	pytestShortRegex   = regexp.MustCompile(`^(PASSED|FAILED|SKIPPED|ERROR|XFAIL|XPASS)\s+(\S+::\S+?)(?:\s+-\s+.*)?$`)
	pytestReasonRegex  = regexp.MustCompile(`^(?:FAILED|ERROR)\s+(\S+::\S+?)\s+-\s+(.+)$`)
	pytestSummaryRegex = regexp.MustCompile(`^=*\s*(\d+\s+(?:passed|failed|skipped|errors?|xfailed|xpassed|deselected|warnings?)\b.*?)\s+in\s+\d+(?:\.\d+)?s\b`)
)

// PytestParser parses Python pytest output.
type PytestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *PytestParser) Name() string {
	return "pytest"
}

// Parse extracts test outcomes from pytest output.
// pytest outputs lines like:
//
//	tests/test_foo.py::test_bar PASSED                     [ 50%]
//	tests/test_foo.py::test_baz[1-2] FAILED                [100%]
//	FAILED tests/test_foo.py::test_baz[1-2] - assert 3 == 4
//	======= 1 passed, 1 failed, 3 skipped, 4 warnings in 0.12s =======
//
// Errors count as failures, xfail as skipped and xpass as passed. The last
// summary line wins.
func (p *PytestParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := pytestVerboseRegex.FindStringSubmatch(trimmed); match != nil {
			cases[match[1]] = pytestStatus(match[2])
			continue
		}
		if match := pytestShortRegex.FindStringSubmatch(trimmed); match != nil {
			cases[match[2]] = pytestStatus(match[1])
			continue
		}
		if match := pytestSummaryRegex.FindStringSubmatch(trimmed); match != nil {
			words := countWords(match[1])
			summary = newCounts(
				words["passed"]+words["xpassed"],
				words["failed"]+words["error"]+words["errors"],
				words["skipped"]+words["xfailed"],
			)
			hasSummary = true
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

func pytestStatus(word string) Status {
	switch word {
	case "PASSED", "XPASS":
		return Passed
	case "SKIPPED", "XFAIL":
		return Skipped
	default:
		return Failed
	}
}

// Reasons returns the message pytest prints after each failed test in its
// short test summary:
//
//	FAILED tests/test_foo.py::test_baz[1-2] - assert 3 == 4
func (p *PytestParser) Reasons(output string) map[string]string {
	reasons := make(map[string]string)
	for _, line := range splitLines(output) {
		if match := pytestReasonRegex.FindStringSubmatch(strings.TrimSpace(line)); match != nil {
			reasons[match[1]] = truncateReason(strings.TrimSpace(match[2]))
		}
	}
	return reasons
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for CTest output parsing.
var (
	ctestCaseRegex    = regexp.MustCompile(`^\s*\d+/\d+\s+Test\s+#\s*\d+:\s+(\S+)\s+\.*\s*(?:\*+)?(Passed|Failed|Not Run|Skipped|Disabled|Timeout|Exception|SEGFAULT|Subprocess aborted)`)
	ctestListRegex    = regexp.MustCompile(`^\s*\d+\s+-\s+(\S+)`)
	ctestSummaryRegex = regexp.MustCompile(`(\d+)%\s+tests\s+passed,\s+(\d+)\s+tests?\s+failed\s+out\s+of\s+(\d+)`)
)

// CTestParser parses CTest output.
type CTestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *CTestParser) Name() string {
	return "ctest"
}

// Parse extracts test outcomes from CTest output.
// CTest outputs lines like:
//
//	1/3 Test #1: calc_adds ........................   Passed    0.01 sec
//	2/3 Test #2: calc_divides .....................***Failed    0.02 sec
//	67% tests passed, 1 tests failed out of 3
//	The following tests FAILED:
//	          2 - calc_divides (Failed)
//
// Without per-test lines the summary is expanded into placeholders.
func (p *CTestParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false
	section := ""

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "The following tests FAILED"):
			section = "failed"
			continue
		case strings.HasPrefix(trimmed, "The following tests did not run"):
			section = "skipped"
			continue
		case trimmed == "":
			section = ""
			continue
		}

		if match := ctestCaseRegex.FindStringSubmatch(line); match != nil {
			switch match[2] {
			case "Passed":
				cases[match[1]] = Passed
			case "Not Run", "Skipped", "Disabled":
				cases[match[1]] = Skipped
			default:
				cases[match[1]] = Failed
			}
			continue
		}
		if match := ctestSummaryRegex.FindStringSubmatch(line); match != nil {
			total := atoi(match[3])
			failed := atoi(match[2])
			passed := total - failed
			if passed < 0 {
				passed = 0
			}
			summary = newCounts(passed, failed, 0)
			hasSummary = true
			continue
		}
		if section == "" {
			continue
		}
		if match := ctestListRegex.FindStringSubmatch(line); match != nil {
			if section == "failed" {
				cases[match[1]] = Failed
			} else {
				cases[match[1]] = Skipped
			}
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

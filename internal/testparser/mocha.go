package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Mocha output parsing.
var (
	mochaPassingRegex = regexp.MustCompile(`^\s*(\d+)\s+passing\b`)
	mochaFailingRegex = regexp.MustCompile(`^\s*(\d+)\s+failing\b`)
	mochaPendingRegex = regexp.MustCompile(`^\s*(\d+)\s+pending\b`)
	mochaPassRegex    = regexp.MustCompile(`^\s+[✓✔]\s+(.+)$`)
	mochaFailRegex    = regexp.MustCompile(`^\s+\d+\)\s+(.+)$`)
	mochaPendingCase  = regexp.MustCompile(`^\s+-\s+(.+)$`)
)

// MochaParser parses Mocha output produced by the default spec reporter.
type MochaParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *MochaParser) Name() string {
	return "mocha"
}

// Parse extracts test outcomes from Mocha output.
// Mocha outputs lines like:
//
//	  Array
//	    ✓ returns -1 when missing (2ms)
//	    1) throws on null
//	    - handles sparse arrays
//
//	  1 passing (12ms)
//	  1 failing
//	  1 pending
//
// Per-test lines are only read above the "passing" summary; the failure
// details Mocha prints below it repeat the numbered names.
func (p *MochaParser) Parse(output string) Results {
	lines := splitLines(output)

	summaryAt := -1
	var summary Counts
	for i, line := range lines {
		if match := mochaPassingRegex.FindStringSubmatch(line); match != nil {
			if summaryAt < 0 {
				summaryAt = i
			}
			summary.Passed = atoi(match[1])
		} else if match := mochaFailingRegex.FindStringSubmatch(line); match != nil && summaryAt >= 0 {
			summary.Failed = atoi(match[1])
		} else if match := mochaPendingRegex.FindStringSubmatch(line); match != nil && summaryAt >= 0 {
			summary.Skipped = atoi(match[1])
		}
	}

	// Without the summary none of the indented lines can be trusted as Mocha's.
	if summaryAt < 0 {
		return Results{}
	}
	summary.Total = summary.Passed + summary.Failed + summary.Skipped

	cases := make(Results)
	for _, line := range lines[:summaryAt] {
		if match := mochaPassRegex.FindStringSubmatch(line); match != nil {
			cases[stripDuration(match[1])] = Passed
		} else if match := mochaFailRegex.FindStringSubmatch(line); match != nil {
			cases[strings.TrimSpace(match[1])] = Failed
		} else if match := mochaPendingCase.FindStringSubmatch(line); match != nil {
			cases[strings.TrimSpace(match[1])] = Skipped
		}
	}

	if summary.Total == 0 && len(cases) == 0 {
		// "0 passing": the suite ran and found nothing to run.
		return Results{"no_tests_found": Passed}
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for RSpec output parsing.
var (
	rspecSummaryRegex = regexp.MustCompile(`^(\d+)\s+examples?,\s*(\d+)\s+failures?(?:,\s*(\d+)\s+pending)?`)
	rspecFailedRegex  = regexp.MustCompile(`^rspec\s+\./\S+:\d+\s+#\s+(.+)$`)
)

// RSpecParser parses RSpec output.
type RSpecParser struct{}

// Name returns the parser name.
func (p *RSpecParser) Name() string {
	return "rspec"
}

// Parse extracts test outcomes from RSpec output.
// RSpec outputs a summary and re-run commands for failures:
//
//	Finished in 0.02 seconds (files took 0.1 seconds to load)
//	12 examples, 1 failure, 2 pending
//
//	Failed examples:
//
//	rspec ./spec/calc_spec.rb:12 # Calc divides by zero
//
// Failed examples are named by their description; everything else becomes
// placeholders.
func (p *RSpecParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := rspecFailedRegex.FindStringSubmatch(trimmed); match != nil {
			cases[strings.TrimSpace(match[1])] = Failed
			continue
		}
		if match := rspecSummaryRegex.FindStringSubmatch(trimmed); match != nil {
			examples := atoi(match[1])
			failed := atoi(match[2])
			pending := atoi(match[3])
			passed := examples - failed - pending
			if passed < 0 {
				passed = 0
			}
			summary = newCounts(passed, failed, pending)
			hasSummary = true
		}
	}

	if !hasSummary {
		return cases
	}
	return fillGap(cases, summary, p.Name())
}

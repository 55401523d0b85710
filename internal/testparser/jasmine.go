package testparser

import "regexp"

var jasmineSummaryRegex = regexp.MustCompile(`(\d+)\s+specs?,\s*(\d+)\s+failures?(?:,\s*(\d+)\s+pending\s+specs?)?`)

// JasmineParser parses the Jasmine console reporter summary.
type JasmineParser struct{}

// Name returns the parser name.
func (p *JasmineParser) Name() string {
	return "jasmine"
}

// Parse extracts test outcomes from Jasmine output.
// Jasmine outputs a summary line like:
//
//	12 specs, 1 failure, 2 pending specs
//
// The last summary wins when several suites print one.
func (p *JasmineParser) Parse(output string) Results {
	var match []string
	for _, line := range splitLines(output) {
		if m := jasmineSummaryRegex.FindStringSubmatch(line); m != nil {
			match = m
		}
	}
	if match == nil {
		return Results{}
	}

	specs := atoi(match[1])
	failed := atoi(match[2])
	pending := atoi(match[3])
	passed := specs - failed - pending
	if passed < 0 {
		passed = 0
	}
	return expandCounts(p.Name(), newCounts(passed, failed, pending))
}

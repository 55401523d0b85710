package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Bun output parsing.
var (
	bunCaseRegex    = regexp.MustCompile(`^\s*\((pass|fail|skip|todo)\)\s+(.+?)(?:\s+\[\d+(?:\.\d+)?\s*m?s\])?\s*$`)
	bunSummaryRegex = regexp.MustCompile(`^\s*(\d+)\s+(pass|fail|skip|todo)\s*$`)
)

// BunParser parses Bun test output.
type BunParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *BunParser) Name() string {
	return "bun"
}

// Parse extracts test outcomes from Bun test output.
// Without a TTY Bun outputs lines like:
//
//	(pass) math > adds [0.12ms]
//	(fail) math > divides
//	(skip) math > rounds
//
//	 47 pass
//	 2 fail
//	 3 skip
//
// Each summary count sits on a line of its own.
func (p *BunParser) Parse(output string) Results {
	cases := make(Results)
	counts := make(map[string]int)

	for _, line := range splitLines(output) {
		if match := bunCaseRegex.FindStringSubmatch(line); match != nil {
			name := strings.TrimSpace(match[2])
			switch match[1] {
			case "pass":
				cases[name] = Passed
			case "fail":
				cases[name] = Failed
			default:
				cases[name] = Skipped
			}
			continue
		}
		if match := bunSummaryRegex.FindStringSubmatch(line); match != nil {
			counts[match[2]] = atoi(match[1])
		}
	}

	if len(counts) == 0 {
		return cases
	}
	summary := newCounts(counts["pass"], counts["fail"], counts["skip"]+counts["todo"])
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for TAP output parsing.
var (
	tapLineRegex    = regexp.MustCompile(`^\s*(not ok|ok)\s+(\d+)\b\s*-?\s*([^#]*?)\s*(?:#\s*((?i:skip|todo)\b)?.*)?$`)
	tapAssertsRegex = regexp.MustCompile(`^\s*Asserts:\s+(\d+)\s+pass\s+(\d+)\s+fail`)
	tapCountRegex   = regexp.MustCompile(`^#\s+(pass|fail|skip)\s+(\d+)\s*$`)
)

// TapParser parses Test Anything Protocol output (node-tap, tape, prove).
type TapParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *TapParser) Name() string {
	return "tap"
}

// Parse extracts test outcomes from TAP output.
// TAP outputs lines like:
//
//	ok 1 - adds numbers
//	not ok 2 - divides by zero
//	ok 3 - network # SKIP offline
//	# pass  2
//	# fail  1
//
// node-tap additionally prints "Asserts:  2 pass  1 fail  3 of 3 complete".
// Unnamed points are keyed "test_<n>".
func (p *TapParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false
	tapeCounts := make(map[string]int)

	for _, line := range splitLines(output) {
		if match := tapLineRegex.FindStringSubmatch(line); match != nil {
			name := strings.TrimSpace(match[3])
			if name == "" {
				name = "test_" + strconv.Itoa(atoi(match[2]))
			}
			switch {
			case match[4] != "":
				cases[name] = Skipped
			case match[1] == "ok":
				cases[name] = Passed
			default:
				cases[name] = Failed
			}
			continue
		}
		if match := tapAssertsRegex.FindStringSubmatch(line); match != nil {
			summary = newCounts(atoi(match[1]), atoi(match[2]), 0)
			hasSummary = true
			continue
		}
		if match := tapCountRegex.FindStringSubmatch(strings.TrimSpace(line)); match != nil {
			tapeCounts[match[1]] = atoi(match[2])
		}
	}

	if !hasSummary && len(tapeCounts) > 0 {
		summary = newCounts(tapeCounts["pass"], tapeCounts["fail"], tapeCounts["skip"])
		hasSummary = true
	}
	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

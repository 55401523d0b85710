package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Jest output parsing.
var (
	jestCheckRegex   = regexp.MustCompile(`^(✓|✕|○)\s+(.+)$`)
	jestFileRegex    = regexp.MustCompile(`^(PASS|FAIL|SKIP)\s+(.+)$`)
	jestSummaryRegex = regexp.MustCompile(`^\s*Tests:\s+(.*\d+\s+total)`)
	jestFileLineHint = regexp.MustCompile(`\(\d+ tests?\b`)
)

// JestParser parses Jest output. Verbose (--verbose) output is expected for
// per-test names; otherwise the summary line is expanded into placeholders.
type JestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *JestParser) Name() string {
	return "jest"
}

// Parse extracts test outcomes from Jest output.
// Jest outputs lines like:
//
//	✓ adds numbers (3 ms)
//	✕ divides by zero (1 ms)
//	○ skipped flaky network test
//	PASS src/sum.test.js
//	Tests:       1 failed, 1 skipped, 10 passed, 12 total
func (p *JestParser) Parse(output string) Results {
	lines := splitLines(output)
	cases := make(Results)

	for _, line := range lines {
		match := jestCheckRegex.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil || jestFileLineHint.MatchString(match[2]) {
			continue
		}
		name := stripDuration(match[2])
		switch match[1] {
		case "✓":
			cases[name] = Passed
		case "✕":
			cases[name] = Failed
		case "○":
			cases[strings.TrimPrefix(name, "skipped ")] = Skipped
		}
	}

	summary, hasSummary := jestSummary(lines)

	// Without verbose output Jest only names the test files. File entries
	// cannot be reconciled with a per-test total, so a summary wins.
	if len(cases) == 0 {
		if hasSummary && summary.Total > 0 {
			return expandCounts(p.Name(), summary)
		}
		for _, line := range lines {
			match := jestFileRegex.FindStringSubmatch(strings.TrimSpace(line))
			if match == nil {
				continue
			}
			name := stripDuration(match[2])
			switch match[1] {
			case "PASS":
				cases[name] = Passed
			case "FAIL":
				cases[name] = Failed
			case "SKIP":
				cases[name] = Skipped
			}
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

// jestSummary reads the first "Tests:" summary line.
func jestSummary(lines []string) (Counts, bool) {
	for _, line := range lines {
		match := jestSummaryRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		words := countWords(match[1])
		return newCounts(words["passed"], words["failed"], words["skipped"]+words["todo"]), true
	}
	return Counts{}, false
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Vitest output parsing.
var (
	vitestFileRegex    = regexp.MustCompile(`^\s*([✓✗×❯])\s+(\S.*?)\s+\((\d+)\s+tests?((?:\s*\|\s*\d+\s+\w+)*)\)(?:\s+\d+(?:\.\d+)?\s*m?s)?\s*$`)
	vitestCaseRegex    = regexp.MustCompile(`^\s+([✓✗×↓])\s+(.+?)(?:\s+\d+(?:\.\d+)?\s*m?s)?$`)
	vitestSummaryRegex = regexp.MustCompile(`^\s*Tests\s+(\d+\s+(?:failed|passed|skipped|todo)\b.*)$`)
)

// VitestParser parses Vitest output.
type VitestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *VitestParser) Name() string {
	return "vitest"
}

// Parse extracts test outcomes from Vitest output.
// Vitest outputs lines like:
//
//	 ✓ src/math.test.ts (3 tests) 4ms
//	 ❯ src/io.test.ts (4 tests | 1 failed | 1 skipped) 12ms
//	   ✓ reads a file
//	   × writes a file 3ms
//	 Tests  1 failed | 5 passed | 1 skipped (7)
func (p *VitestParser) Parse(output string) Results {
	lines := splitLines(output)
	cases := make(Results)
	files := make(Results)

	for _, line := range lines {
		if match := vitestFileRegex.FindStringSubmatch(line); match != nil {
			addVitestFile(files, match)
			continue
		}
		match := vitestCaseRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[2])
		switch match[1] {
		case "✓":
			cases[name] = Passed
		case "✗", "×":
			cases[name] = Failed
		case "↓":
			cases[name] = Skipped
		}
	}

	summary, hasSummary := vitestSummary(lines)

	// Indented checkmarks alone are ambiguous with Jest and Mocha; only trust
	// them when a Vitest file line or summary is present.
	if len(files) == 0 && !hasSummary {
		return Results{}
	}
	if len(cases) == 0 {
		cases = files
	}
	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

// vitestSummary reads the "Tests" summary line.
func vitestSummary(lines []string) (Counts, bool) {
	for _, line := range lines {
		match := vitestSummaryRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		words := countWords(match[1])
		return newCounts(words["passed"], words["failed"], words["skipped"]+words["todo"]), true
	}
	return Counts{}, false
}

// addVitestFile expands a per-file line into one entry per test of the file.
func addVitestFile(results Results, match []string) {
	file := strings.TrimSpace(match[2])
	total := atoi(match[3])
	extra := countWords(match[4])
	failed := extra["failed"]
	skipped := extra["skipped"] + extra["todo"]

	passed := total - failed - skipped
	if passed < 0 {
		passed = 0
	}
	if match[1] != "✓" && failed == 0 {
		// A failing file without a count: attribute the failure to the file.
		failed, passed = passed, 0
	}

	addPlaceholders(results, file, Passed, passed)
	addPlaceholders(results, file, Failed, failed)
	addPlaceholders(results, file, Skipped, skipped)
}

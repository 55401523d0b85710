package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Gradle output parsing.
var (
	gradleCaseRegex    = regexp.MustCompile(`^(.+?)\s+>\s+(.+?)\s+(PASSED|FAILED|SKIPPED)\s*$`)
	gradleSummaryRegex = regexp.MustCompile(`^(\d+)\s+tests?\s+completed(?:,\s*(\d+)\s+failed)?(?:,\s*(\d+)\s+skipped)?`)
)

// GradleParser parses Gradle test task output.
type GradleParser struct{}

// Name returns the parser name.
func (p *GradleParser) Name() string {
	return "gradle"
}

// Parse extracts test outcomes from Gradle output.
// Gradle outputs lines like:
//
//	CalcTest > adds() PASSED
//	CalcTest > Nested > divides() FAILED
//	3 tests completed, 1 failed, 1 skipped
//
// By default Gradle only prints failing tests, so the rest of the declared
// count becomes placeholders.
func (p *GradleParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := gradleCaseRegex.FindStringSubmatch(trimmed); match != nil {
			class := match[1]
			method := strings.ReplaceAll(match[2], " > ", ".")
			switch match[3] {
			case "PASSED":
				cases[jvmTestName(class, method)] = Passed
			case "FAILED":
				cases[jvmTestName(class, method)] = Failed
			case "SKIPPED":
				cases[jvmTestName(class, method)] = Skipped
			}
			continue
		}
		if match := gradleSummaryRegex.FindStringSubmatch(trimmed); match != nil {
			completed := atoi(match[1])
			failed := atoi(match[2])
			skipped := atoi(match[3])
			passed := completed - failed - skipped
			if passed < 0 {
				passed = 0
			}
			block := newCounts(passed, failed, skipped)
			summary.Add(&block)
			hasSummary = true
		}
	}

	if !hasSummary {
		return cases
	}
	return fillGap(cases, summary, p.Name())
}

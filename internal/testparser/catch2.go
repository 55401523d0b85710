package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Catch2 output parsing.
var (
	catch2XMLRegex     = regexp.MustCompile(`(?s)<TestCase\s+name="([^"]+)"[^>]*>.*?<OverallResult\s+success="(true|false)"(?:\s+skips="(\d+)")?`)
	catch2TextRegex    = regexp.MustCompile(`^([^\[\s/].*?)\s+(?:\.{3}\s+)?(PASSED|FAILED)$`)
	catch2SummaryRegex = regexp.MustCompile(`^test cases:\s*(\d+)\s*\|\s*(?:(\d+)\s*passed)?\s*\|?\s*(?:(\d+)\s*failed)?\s*\|?\s*(?:(\d+)\s*skipped)?`)
	catch2AllPassRegex = regexp.MustCompile(`^All tests passed\s+\((\d+)\s+assertions?\s+in\s+(\d+)\s+test\s+cases?\)`)
	catch2Unescaper    = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// Catch2Parser parses Catch2 console and XML reporter output.
type Catch2Parser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *Catch2Parser) Name() string {
	return "catch2"
}

// Parse extracts test outcomes from Catch2 output.
// The XML reporter outputs:
//
//	<TestCase name="adds" filename="calc.cpp" line="5">
//	  <OverallResult success="true" skips="0"/>
//	</TestCase>
//
// and the console reporter (with -s) lines like:
//
//	adds ... PASSED
//	===============================================================================
//	test cases: 3 | 2 passed | 1 failed
//	All tests passed (12 assertions in 3 test cases)
func (p *Catch2Parser) Parse(output string) Results {
	output = cleanOutput(output)
	cases := make(Results)

	for _, match := range catch2XMLRegex.FindAllStringSubmatch(output, -1) {
		name := catch2Unescaper.Replace(match[1])
		switch {
		case match[2] == "false":
			cases[name] = Failed
		case atoi(match[3]) > 0:
			cases[name] = Skipped
		default:
			cases[name] = Passed
		}
	}

	var summary Counts
	hasSummary := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if match := catch2SummaryRegex.FindStringSubmatch(trimmed); match != nil {
			total := atoi(match[1])
			passed := atoi(match[2])
			failed := atoi(match[3])
			skipped := atoi(match[4])
			if match[2] == "" {
				passed = total - failed - skipped
			}
			summary = newCounts(passed, failed, skipped)
			hasSummary = true
			continue
		}
		if match := catch2AllPassRegex.FindStringSubmatch(trimmed); match != nil {
			summary = newCounts(atoi(match[2]), 0, 0)
			hasSummary = true
			continue
		}
		if match := catch2TextRegex.FindStringSubmatch(trimmed); match != nil && catch2TextName(match[1]) {
			if match[2] == "PASSED" {
				cases[match[1]] = Passed
			} else {
				cases[match[1]] = Failed
			}
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

// catch2TextName rejects names that belong to other runners' "... PASSED"
// lines: Gradle's "Class > method", pytest's "file::test" and Ant's
// "method(Class):".
func catch2TextName(name string) bool {
	return !strings.Contains(name, " > ") &&
		!strings.Contains(name, "::") &&
		!strings.HasSuffix(name, ":")
}

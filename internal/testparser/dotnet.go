package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for dotnet test output parsing.
var (
	dotnetSummaryRegex = regexp.MustCompile(`Failed:\s*(\d+),\s*Passed:\s*(\d+),\s*Skipped:\s*(\d+)`)
	dotnetTotalRegex   = regexp.MustCompile(`(?i)Test summary:\s*total:\s*(\d+),\s*failed:\s*(\d+),\s*succeeded:\s*(\d+),\s*skipped:\s*(\d+)`)
	dotnetPassedRegex  = regexp.MustCompile(`(?m)^\s*Passed:\s*(\d+)`)
	dotnetFailedRegex  = regexp.MustCompile(`(?m)^\s*Failed:\s*(\d+)`)
	dotnetSkippedRegex = regexp.MustCompile(`(?m)^\s*Skipped:\s*(\d+)`)
	dotnetCaseRegex    = regexp.MustCompile(`^\s+(Passed|Failed|Skipped)\s+([^\s:!\[][^\[]*?)\s*(?:\[[^\]]*\])?\s*$`)
)

// DotnetParser parses .NET test output.
type DotnetParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *DotnetParser) Name() string {
	return "dotnet"
}

// Parse extracts test outcomes from dotnet test output.
// With "--logger console;verbosity=normal" dotnet test outputs lines like:
//
//	  Passed Calc.Tests.Adds [3 ms]
//	  Failed Calc.Tests.Divides [1 ms]
//
// followed by a summary line:
//
//	Passed!  - Failed:     0, Passed:    47, Skipped:     3, Total:    50
//	Failed!  - Failed:     2, Passed:    45, Skipped:     3, Total:    50
//
// Or in newer versions:
//
//	Total tests: 50
//	     Passed: 47
//	     Failed: 2
//	    Skipped: 3
//
// or "Test summary: total: 50, failed: 2, succeeded: 45, skipped: 3".
// One summary line is printed per test project; they are added up.
func (p *DotnetParser) Parse(output string) Results {
	output = cleanOutput(output)
	cases := make(Results)
	for _, line := range strings.Split(output, "\n") {
		match := dotnetCaseRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[2])
		switch match[1] {
		case "Passed":
			cases[name] = Passed
		case "Failed":
			cases[name] = Failed
		case "Skipped":
			cases[name] = Skipped
		}
	}

	summary, ok := dotnetSummary(output)
	if !ok {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

func dotnetSummary(output string) (Counts, bool) {
	var summary Counts
	found := false

	// Try the summary line format first
	// Format: Failed: N, Passed: N, Skipped: N, Total: N
	for _, match := range dotnetSummaryRegex.FindAllStringSubmatch(output, -1) {
		project := newCounts(atoi(match[2]), atoi(match[1]), atoi(match[3]))
		summary.Add(&project)
		found = true
	}
	if found {
		return summary, true
	}

	for _, match := range dotnetTotalRegex.FindAllStringSubmatch(output, -1) {
		project := newCounts(atoi(match[3]), atoi(match[2]), atoi(match[4]))
		summary.Add(&project)
		found = true
	}
	if found {
		return summary, true
	}

	// Try the multi-line format
	var passed, failed, skipped int
	if match := dotnetPassedRegex.FindStringSubmatch(output); match != nil {
		passed = atoi(match[1])
		found = true
	}
	if match := dotnetFailedRegex.FindStringSubmatch(output); match != nil {
		failed = atoi(match[1])
		found = true
	}
	if match := dotnetSkippedRegex.FindStringSubmatch(output); match != nil {
		skipped = atoi(match[1])
		found = true
	}
	return newCounts(passed, failed, skipped), found
}

package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Ant JUnit output parsing.
var (
	antPrefixRegex   = regexp.MustCompile(`^\s*\[junit\]\s?`)
	antTestcaseRegex = regexp.MustCompile(`^Testcase:\s+(\S+?)(?:\(([\w.$]+)\))?\s+took\s+`)
	antMethodRegex   = regexp.MustCompile(`^(\w+)\(([\w.$]+)\):\s*(PASSED|FAILED|ERROR|SKIPPED)\b`)
)

// JUnitParser parses JUnit output as printed by Ant's junit task.
type JUnitParser struct{}

// Name returns the parser name.
func (p *JUnitParser) Name() string {
	return "junit"
}

// Parse extracts test outcomes from Ant JUnit output.
// The junit task outputs lines like:
//
//	[junit] Testsuite: com.example.CalcTest
//	[junit] Tests run: 3, Failures: 1, Errors: 0, Skipped: 0, Time elapsed: 0.02 sec
//	[junit] Testcase: divides took 0.004 sec
//	[junit] 	FAILED
//	[junit] adds(com.example.CalcTest): PASSED
//
// A Testcase line without a following FAILED, "Caused an ERROR" or SKIPPED
// marker passed. Only "[junit]" lines are read.
func (p *JUnitParser) Parse(output string) Results {
	tally := newClassTally()
	current := ""
	pending := ""

	for _, line := range splitLines(output) {
		if !antPrefixRegex.MatchString(line) {
			continue
		}
		text := strings.TrimSpace(antPrefixRegex.ReplaceAllString(line, ""))

		switch text {
		case "FAILED", "Caused an ERROR":
			if pending != "" {
				tally.addMethod(current, pending, Failed)
				pending = ""
			}
			continue
		case "SKIPPED":
			if pending != "" {
				tally.addMethod(current, pending, Skipped)
				pending = ""
			}
			continue
		}

		if match := jvmRunningRegex.FindStringSubmatch(text); match != nil {
			current = match[1]
			continue
		}
		if match := jvmTestsRunRegex.FindStringSubmatch(text); match != nil {
			tally.setCounts(current, jvmCounts(match))
			continue
		}
		if match := antTestcaseRegex.FindStringSubmatch(text); match != nil {
			class := current
			if match[2] != "" {
				class = match[2]
			}
			current = class
			tally.addMethod(class, match[1], Passed)
			pending = match[1]
			continue
		}
		if match := antMethodRegex.FindStringSubmatch(text); match != nil {
			status := Passed
			switch match[3] {
			case "FAILED", "ERROR":
				status = Failed
			case "SKIPPED":
				status = Skipped
			}
			tally.addMethod(match[2], match[1], status)
		}
	}

	return tally.results(p.Name())
}

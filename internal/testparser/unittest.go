package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for unittest output parsing.
var (
	unittestCaseRegex   = regexp.MustCompile(`^(\w+)\s+\(([\w.]+)\)\s+\.\.\.\s+(ok|FAIL|ERROR|skipped\b.*|expected failure|unexpected success)$`)
	unittestRanRegex    = regexp.MustCompile(`^Ran\s+(\d+)\s+tests?\s+in\s+`)
	unittestStatusRegex = regexp.MustCompile(`^(OK|FAILED)(?:\s+\((.*)\))?\s*$`)
	unittestDetailRegex = regexp.MustCompile(`(failures|errors|skipped|expected failures|unexpected successes)=(\d+)`)
)

// UnittestParser parses output of Python's unittest runner.
type UnittestParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *UnittestParser) Name() string {
	return "unittest"
}

// Parse extracts test outcomes from unittest output.
// With -v unittest outputs lines like:
//
//	test_add (tests.test_math.MathTest) ... ok
//	test_div (tests.test_math.MathTest.test_div) ... FAIL
//	test_net (tests.test_math.MathTest) ... skipped 'offline'
//	----------------------------------------------------------------------
//	Ran 3 tests in 0.004s
//
//	FAILED (failures=1, skipped=1)
//
// Names are "<module>.<Class>.<method>". Several runs in one log add up.
func (p *UnittestParser) Parse(output string) Results {
	cases := make(Results)
	ran := -1
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if match := unittestCaseRegex.FindStringSubmatch(trimmed); match != nil {
			cases[unittestName(match[1], match[2])] = unittestStatus(match[3])
			continue
		}
		if match := unittestRanRegex.FindStringSubmatch(trimmed); match != nil {
			ran = atoi(match[1])
			continue
		}
		if ran < 0 {
			continue
		}
		if match := unittestStatusRegex.FindStringSubmatch(trimmed); match != nil {
			details := make(map[string]int)
			for _, d := range unittestDetailRegex.FindAllStringSubmatch(match[2], -1) {
				details[d[1]] = atoi(d[2])
			}
			failed := details["failures"] + details["errors"] + details["unexpected successes"]
			skipped := details["skipped"] + details["expected failures"]
			passed := ran - failed - skipped
			if passed < 0 {
				passed = 0
			}
			block := newCounts(passed, failed, skipped)
			summary.Add(&block)
			hasSummary = true
			ran = -1
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}

// unittestName joins method and class. Python 3.11+ already appends the
// method to the class path.
func unittestName(method, class string) string {
	if strings.HasSuffix(class, "."+method) {
		return class
	}
	return class + "." + method
}

func unittestStatus(word string) Status {
	switch {
	case word == "ok":
		return Passed
	case strings.HasPrefix(word, "skipped"), word == "expected failure":
		return Skipped
	default:
		return Failed
	}
}

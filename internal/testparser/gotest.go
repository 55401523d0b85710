package testparser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Static regexes for Go test output parsing.
// Compiled once at package init for performance.
var (
	goResultRegex = regexp.MustCompile(`^\s*---\s+(PASS|FAIL|SKIP):\s+(\S+)`)
	goErrorLine   = regexp.MustCompile(`^\s+\S+\.go:\d+:`)
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    string  `json:"Time"`
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// GoTestParser parses Go test output, both plain -v text and -json events.
type GoTestParser struct{}

// Name returns the parser name.
func (p *GoTestParser) Name() string {
	return "gotest"
}

// Parse extracts test outcomes from Go test output.
// Go test outputs lines like:
//
//	=== RUN   TestFoo
//	--- PASS: TestFoo (0.00s)
//	    --- FAIL: TestBar/empty (0.01s)
//	--- SKIP: TestBaz (0.00s)
//
// A test that was started but never reported (a panic or timeout cut the
// run short) has no outcome and is left out.
func (p *GoTestParser) Parse(output string) Results {
	results := make(Results)
	for _, line := range splitLines(output) {
		if strings.HasPrefix(line, "{") {
			p.parseEvent(results, line)
			continue
		}
		match := goResultRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		results[match[2]] = goStatus(match[1])
	}
	return results
}

// parseEvent applies one go test -json event. Package-level events are ignored.
func (p *GoTestParser) parseEvent(results Results, line string) {
	var event TestEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil || event.Test == "" {
		return
	}
	switch event.Action {
	case "pass":
		results[event.Test] = Passed
	case "fail":
		results[event.Test] = Failed
	case "skip":
		results[event.Test] = Skipped
	}
}

func goStatus(word string) Status {
	switch word {
	case "PASS":
		return Passed
	case "SKIP":
		return Skipped
	default:
		return Failed
	}
}

// Reasons returns the first error message printed by each failed test.
// Go test output format:
//
//	=== RUN   TestFoo
//	    file_test.go:15: expected X, got Y
//	--- FAIL: TestFoo (0.00s)
func (p *GoTestParser) Reasons(output string) map[string]string {
	reasons := make(map[string]string)
	lines := splitLines(output)
	eventOutput := make(map[string][]string)

	for i, line := range lines {
		if strings.HasPrefix(line, "{") {
			var event TestEvent
			if err := json.Unmarshal([]byte(line), &event); err != nil || event.Test == "" {
				continue
			}
			switch event.Action {
			case "output":
				eventOutput[event.Test] = append(eventOutput[event.Test], event.Output)
			case "fail":
				if reason := firstGoError(eventOutput[event.Test]); reason != "" {
					reasons[event.Test] = reason
				}
			}
			continue
		}

		match := goResultRegex.FindStringSubmatch(line)
		if match == nil || match[1] != "FAIL" {
			continue
		}
		// Look backwards for error lines until the previous test boundary.
		var block []string
		for j := i - 1; j >= 0 && !isTestBoundary(lines[j]); j-- {
			block = append([]string{lines[j]}, block...)
		}
		if reason := firstGoError(block); reason != "" {
			reasons[match[2]] = reason
		}
	}
	return reasons
}

// isTestBoundary returns true if the line marks the start of a test run
// or the result of a different test (PASS/FAIL/SKIP).
func isTestBoundary(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "=== RUN") ||
		strings.HasPrefix(trimmed, "--- PASS:") ||
		strings.HasPrefix(trimmed, "--- FAIL:") ||
		strings.HasPrefix(trimmed, "--- SKIP:")
}

// firstGoError extracts the message of the first "file.go:N: message" line.
func firstGoError(lines []string) string {
	for _, line := range lines {
		line = strings.TrimRight(line, "\n")
		if !goErrorLine.MatchString(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(trimmed, ".go:")
		afterFile := trimmed[idx+4:]
		if colonIdx := strings.Index(afterFile, ": "); colonIdx != -1 {
			return truncateReason(strings.TrimSpace(afterFile[colonIdx+2:]))
		}
	}
	return ""
}

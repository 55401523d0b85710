package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for command-section parsing.
var (
	commandHeaderRegex = regexp.MustCompile(`^=== Command \d+: (.+?) ===\s*$`)
	exitCodeRegex      = regexp.MustCompile(`(?m)^\s*Exit code:\s*(\d+)\s*$`)
)

// CommandsParser reads logs produced by wrapper scripts that run a list of
// shell commands and echo each exit status. Every command becomes one entry
// keyed by its command line.
type CommandsParser struct{}

// Name returns the parser name.
func (p *CommandsParser) Name() string {
	return "commands"
}

// Parse extracts one outcome per command section:
//
//	=== Command 1: npm run lint ===
//	...
//	Exit code: 0
//	=== Command 2: npm test ===
//	...
//	Exit code: 1
//
// A section without an exit code never finished and is left out.
func (p *CommandsParser) Parse(output string) Results {
	results := make(Results)

	var current string
	var body []string
	flush := func() {
		if current == "" {
			return
		}
		match := exitCodeRegex.FindStringSubmatch(strings.Join(body, "\n"))
		if match == nil {
			return
		}
		if atoi(match[1]) == 0 {
			results[current] = Passed
		} else {
			results[current] = Failed
		}
	}

	for _, line := range splitLines(output) {
		if match := commandHeaderRegex.FindStringSubmatch(line); match != nil {
			flush()
			current = strings.TrimSpace(match[1])
			body = body[:0]
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()

	return results
}

// exitFailed reports whether the output echoes a non-zero exit code.
func exitFailed(output string) bool {
	for _, match := range exitCodeRegex.FindAllStringSubmatch(output, -1) {
		if atoi(match[1]) != 0 {
			return true
		}
	}
	return false
}

// toolOutput narrows output to the command sections that ran the tool
// matched by invoke, so another command's exit code or npm error is not
// charged to it. A section ran the tool when its header or body matches.
// Output without command headers is returned whole. The boolean reports
// whether the tool appears at all.
func toolOutput(output string, invoke *regexp.Regexp) (string, bool) {
	lines := splitLines(output)
	var (
		sections [][]string
		headers  []string
		current  []string
		header   string
	)
	for _, line := range lines {
		if match := commandHeaderRegex.FindStringSubmatch(line); match != nil {
			sections = append(sections, current)
			headers = append(headers, header)
			current, header = []string{line}, strings.TrimSpace(match[1])
			continue
		}
		current = append(current, line)
	}
	if len(sections) == 0 {
		whole := strings.Join(lines, "\n")
		return whole, invoke.MatchString(whole)
	}
	sections = append(sections, current)
	headers = append(headers, header)

	var picked []string
	for i, section := range sections {
		body := strings.Join(section, "\n")
		if (headers[i] != "" && invoke.MatchString(headers[i])) || invoke.MatchString(body) {
			picked = append(picked, body)
		}
	}
	return strings.Join(picked, "\n"), len(picked) > 0
}

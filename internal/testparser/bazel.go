package testparser

import "regexp"

var bazelTargetRegex = regexp.MustCompile(`^(//[^\s:]*:\S+)\s+(?:\(cached\)\s+)?(PASSED|FAILED|FLAKY|TIMEOUT|NO STATUS|SKIPPED|INCOMPLETE)\b`)

// BazelParser parses the per-target summary printed by "bazel test".
type BazelParser struct{}

// Name returns the parser name.
func (p *BazelParser) Name() string {
	return "bazel"
}

// Parse extracts one outcome per test target:
//
//	//src/calc:calc_test                            PASSED in 0.4s
//	//src/io:io_test                    (cached) FAILED in 1.2s
//	//src/net:net_test                          NO STATUS
//
// Flaky targets eventually passed.
func (p *BazelParser) Parse(output string) Results {
	results := make(Results)
	for _, line := range splitLines(output) {
		match := bazelTargetRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		switch match[2] {
		case "PASSED", "FLAKY":
			results[match[1]] = Passed
		case "NO STATUS", "SKIPPED":
			results[match[1]] = Skipped
		default:
			results[match[1]] = Failed
		}
	}
	return results
}

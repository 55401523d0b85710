package testparser

import "regexp"

// Static regexes for Karma output parsing.
var (
	karmaExecutedRegex = regexp.MustCompile(`Executed\s+(\d+)\s+of\s+(\d+)(?:\s+\((\d+)\s+FAILED\))?(?:\s+\(skipped\s+(\d+)\))?`)
	karmaTotalRegex    = regexp.MustCompile(`^\s*TOTAL:\s*(?:(\d+)\s+FAILED,\s*)?(\d+)\s+SUCCESS`)
)

// KarmaParser parses Karma progress output.
type KarmaParser struct{}

// Name returns the parser name.
func (p *KarmaParser) Name() string {
	return "karma"
}

// Parse extracts test outcomes from Karma output.
// Karma rewrites its progress line as tests run, so only the last one counts:
//
//	Chrome Headless 120.0 (Linux): Executed 3 of 10 SUCCESS (0 secs / 0.01 secs)
//	Chrome Headless 120.0 (Linux): Executed 9 of 10 (1 FAILED) (skipped 1) (0.2 secs / 0.1 secs)
//	TOTAL: 1 FAILED, 8 SUCCESS
//
// Karma reports counts only, so every test is a placeholder.
func (p *KarmaParser) Parse(output string) Results {
	var summary Counts
	found := false

	for _, line := range splitLines(output) {
		if match := karmaTotalRegex.FindStringSubmatch(line); match != nil {
			// The multi-browser total supersedes the per-browser progress.
			summary = newCounts(atoi(match[2]), atoi(match[1]), summary.Skipped)
			found = true
			continue
		}
		match := karmaExecutedRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		executed := atoi(match[1])
		failed := atoi(match[3])
		passed := executed - failed
		if passed < 0 {
			passed = 0
		}
		summary = newCounts(passed, failed, atoi(match[4]))
		found = true
	}

	if !found {
		return Results{}
	}
	return expandCounts(p.Name(), summary)
}

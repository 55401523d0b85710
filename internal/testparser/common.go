package testparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// DefaultReconcileThreshold is the share of a declared total that individually
// parsed tests must reach before they are trusted over the summary line.
const DefaultReconcileThreshold = 0.5

// maxCount caps any count read from a summary line. Counts beyond it are
// garbage (or hostile) input and would only blow up placeholder generation.
const maxCount = 100000

var durationSuffixRegex = regexp.MustCompile(`\s*[(\[]\s*\d+(?:\.\d+)?\s*(?:ms|s|sec|secs|m|µs|us)?\s*[)\]]$`)

// cleanOutput removes ANSI escape sequences and normalizes line endings.
func cleanOutput(output string) string {
	if strings.IndexByte(output, '\x1b') >= 0 || strings.IndexByte(output, '\x9b') >= 0 {
		output = ansi.Strip(output)
	}
	output = strings.ReplaceAll(output, "\r\n", "\n")
	return strings.ReplaceAll(output, "\r", "\n")
}

// splitLines returns the cleaned output split into lines.
func splitLines(output string) []string {
	return strings.Split(cleanOutput(output), "\n")
}

// atoi parses a decimal count, clamping it to [0, maxCount].
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && n == 0 {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > maxCount {
		return maxCount
	}
	return n
}

// category returns the lowercase word used in placeholder names.
func category(status Status) string {
	return strings.ToLower(status.String())
}

// placeholderName builds a synthesized identifier such as "ctest_passed_3".
// Placeholders stand in for tests that a runner only reported as a count.
func placeholderName(prefix string, status Status, n int) string {
	return fmt.Sprintf("%s_%s_%d", prefix, category(status), n)
}

// addPlaceholders inserts count synthesized entries with the given status.
func addPlaceholders(results Results, prefix string, status Status, count int) {
	for i := 1; i <= count; i++ {
		results[placeholderName(prefix, status, i)] = status
	}
}

// expandCounts turns aggregate counts into one placeholder entry per test.
func expandCounts(prefix string, c Counts) Results {
	results := make(Results, c.Passed+c.Failed+c.Skipped)
	addPlaceholders(results, prefix, Passed, c.Passed)
	addPlaceholders(results, prefix, Failed, c.Failed)
	addPlaceholders(results, prefix, Skipped, c.Skipped)
	return results
}

// newCounts builds Counts with Total filled in.
func newCounts(passed, failed, skipped int) Counts {
	return Counts{
		Passed:  passed,
		Failed:  failed,
		Skipped: skipped,
		Total:   passed + failed + skipped,
	}
}

// reconcile settles individually parsed cases against a declared summary.
//
// When the cases cover at least threshold*summary.Total they are returned as
// is and nothing is synthesized. Otherwise the partial cases are dropped and
// the summary is expanded into placeholders, so retries or truncated output
// never count a test twice.
func reconcile(cases Results, summary Counts, prefix string, threshold float64) Results {
	if summary.Total <= 0 {
		return cases
	}
	if threshold <= 0 {
		threshold = DefaultReconcileThreshold
	}
	if float64(len(cases)) >= threshold*float64(summary.Total) {
		return cases
	}
	return expandCounts(prefix, summary)
}

// stripDuration removes a trailing duration annotation such as "(12 ms)",
// "(0.5s)" or "[3 ms]" from a test name.
func stripDuration(name string) string {
	name = strings.TrimSpace(name)
	if m := durationSuffixRegex.FindStringIndex(name); m != nil {
		name = strings.TrimSpace(name[:m[0]])
	}
	return name
}

var countWordRegex = regexp.MustCompile(`(\d+)\s+([A-Za-z]+)`)

// countWords collects "<n> <word>" pairs from a summary fragment, keyed by
// the lowercased word. Repeated words keep their first count.
func countWords(fragment string) map[string]int {
	counts := make(map[string]int)
	for _, m := range countWordRegex.FindAllStringSubmatch(fragment, -1) {
		word := strings.ToLower(m[2])
		if _, seen := counts[word]; !seen {
			counts[word] = atoi(m[1])
		}
	}
	return counts
}

// fillGap tops up cases with placeholders until every status reaches the
// count declared by the summary. Used by runners that only name failures.
func fillGap(cases Results, summary Counts, prefix string) Results {
	have := cases.Counts()
	filled := Merge(cases)
	if missing := summary.Passed - have.Passed; missing > 0 {
		addPlaceholders(filled, prefix, Passed, missing)
	}
	if missing := summary.Failed - have.Failed; missing > 0 {
		addPlaceholders(filled, prefix, Failed, missing)
	}
	if missing := summary.Skipped - have.Skipped; missing > 0 {
		addPlaceholders(filled, prefix, Skipped, missing)
	}
	return filled
}

// truncateReason shortens a failure message to fit a terminal line,
// cutting on rune boundaries.
func truncateReason(reason string) string {
	const maxLen = 80
	if utf8.RuneCountInString(reason) <= maxLen {
		return reason
	}
	return string([]rune(reason)[:maxLen-3]) + "..."
}

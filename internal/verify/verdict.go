package verify

import (
	"fmt"

	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// DefaultFailureThreshold is the accepted share of failed tests.
const DefaultFailureThreshold = 0.09

// Verdict is the acceptance decision for one classified run.
type Verdict struct {
	Counts    testparser.Counts
	Ratio     float64
	Threshold float64
	Accepted  bool
}

// Evaluate accepts a run whose failure ratio does not exceed threshold.
// A run without tests is accepted unless it reports failures.
func Evaluate(counts testparser.Counts, threshold float64) Verdict {
	v := Verdict{Counts: counts, Threshold: threshold}
	if counts.Total == 0 {
		v.Accepted = counts.Failed == 0
		return v
	}
	v.Ratio = counts.FailureRatio()
	v.Accepted = v.Ratio <= threshold
	return v
}

// Message describes the verdict in one line.
func (v Verdict) Message() string {
	switch {
	case !v.Accepted && v.Counts.Total == 0:
		return fmt.Sprintf("%d test(s) failed", v.Counts.Failed)
	case !v.Accepted:
		return fmt.Sprintf("%d test(s) failed (%.1f%% failure rate exceeds %.1f%% threshold)",
			v.Counts.Failed, v.Ratio*100, v.Threshold*100)
	case v.Counts.Failed > 0:
		return fmt.Sprintf("Tests passed with acceptable failure rate (%.1f%% within %.1f%% threshold)",
			v.Ratio*100, v.Threshold*100)
	default:
		return "All tests passed!"
	}
}

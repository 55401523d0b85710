// Package testparser turns raw test runner output into per-test outcomes.
package testparser

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the outcome of a single test.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
)

// String returns the serialized form of the status.
func (s Status) String() string {
	switch s {
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	case Skipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Passed, Failed, Skipped:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts a serialized status back into a Status.
func ParseStatus(text string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "PASSED":
		return Passed, nil
	case "FAILED":
		return Failed, nil
	case "SKIPPED":
		return Skipped, nil
	default:
		return 0, fmt.Errorf("unknown test status %q", text)
	}
}

// Results maps a test identifier to its outcome.
type Results map[string]Status

// Merge returns a new map holding the entries of all given maps.
// On key collisions the later map wins.
func Merge(maps ...Results) Results {
	size := 0
	for _, m := range maps {
		size += len(m)
	}
	merged := make(Results, size)
	for _, m := range maps {
		for name, status := range m {
			merged[name] = status
		}
	}
	return merged
}

// Counts tallies the results by status.
func (r Results) Counts() Counts {
	var c Counts
	for _, status := range r {
		switch status {
		case Passed:
			c.Passed++
		case Failed:
			c.Failed++
		case Skipped:
			c.Skipped++
		}
	}
	c.Total = c.Passed + c.Failed + c.Skipped
	return c
}

// Names returns the test identifiers in sorted order.
func (r Results) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counts holds aggregate test counts.
type Counts struct {
	Passed  int
	Failed  int
	Skipped int
	Total   int
}

// Add adds another Counts to this one.
func (c *Counts) Add(other *Counts) {
	if other == nil {
		return
	}
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Skipped += other.Skipped
	c.Total += other.Total
}

// FailureRatio returns Failed/Total, or 0 when nothing was counted.
func (c Counts) FailureRatio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Failed) / float64(c.Total)
}

// Parser extracts test outcomes from the output of one test runner or tool.
//
// Parse never panics and returns an empty map when the output holds nothing
// the parser recognizes.
type Parser interface {
	// Parse extracts per-test outcomes from raw output.
	Parse(output string) Results
	// Name returns the name of the parser.
	Name() string
}

// Explainer is implemented by parsers that can also recover the message a
// failed test printed.
type Explainer interface {
	Reasons(output string) map[string]string
}

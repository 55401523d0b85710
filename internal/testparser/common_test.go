package testparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// assertResults fails the test with a readable diff when got and want differ.
func assertResults(t *testing.T, got, want Results) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

// placeholders builds the entries expandCounts would produce.
func placeholders(prefix string, passed, failed, skipped int) Results {
	return expandCounts(prefix, newCounts(passed, failed, skipped))
}

func TestCleanOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "ok 1\nok 2", "ok 1\nok 2"},
		{"crlf", "ok 1\r\nok 2\r\n", "ok 1\nok 2\n"},
		{"lone cr", "progress\rdone", "progress\ndone"},
		{"ansi color", "\x1b[32m✓\x1b[39m adds", "✓ adds"},
		{"ansi bold summary", "\x1b[1mTests:\x1b[22m 1 passed, 1 total", "Tests: 1 passed, 1 total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cleanOutput(tt.input); got != tt.expect {
				t.Errorf("cleanOutput(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestAtoiClamps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		expect int
	}{
		{"12", 12},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"999999999", maxCount},
		{"99999999999999999999999", maxCount},
	}

	for _, tt := range tests {
		if got := atoi(tt.input); got != tt.expect {
			t.Errorf("atoi(%q) = %d, want %d", tt.input, got, tt.expect)
		}
	}
}

func TestStripDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		expect string
	}{
		{"adds numbers (3 ms)", "adds numbers"},
		{"adds numbers (0.5s)", "adds numbers"},
		{"Calc.Adds [3 ms]", "Calc.Adds"},
		{"handles (edge) cases", "handles (edge) cases"},
		{"  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		if got := stripDuration(tt.input); got != tt.expect {
			t.Errorf("stripDuration(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()
	got := countWords("1 failed, 2 Skipped, 10 passed, 13 total, 4 failed")
	want := map[string]int{"failed": 1, "skipped": 2, "passed": 10, "total": 13}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("countWords mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()
	cases := Results{"a": Passed, "b": Failed}

	tests := []struct {
		name      string
		cases     Results
		summary   Counts
		threshold float64
		expect    Results
	}{
		{
			name:    "no summary keeps cases",
			cases:   cases,
			summary: Counts{},
			expect:  cases,
		},
		{
			name:    "exactly half keeps cases",
			cases:   cases,
			summary: newCounts(3, 1, 0),
			expect:  cases,
		},
		{
			name:    "below half expands summary",
			cases:   cases,
			summary: newCounts(4, 1, 0),
			expect:  placeholders("x", 4, 1, 0),
		},
		{
			name:      "stricter threshold expands summary",
			cases:     cases,
			summary:   newCounts(3, 1, 0),
			threshold: 0.9,
			expect:    placeholders("x", 3, 1, 0),
		},
		{
			name:    "summary only",
			cases:   Results{},
			summary: newCounts(2, 0, 1),
			expect:  Results{"x_passed_1": Passed, "x_passed_2": Passed, "x_skipped_1": Skipped},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, reconcile(tt.cases, tt.summary, "x", tt.threshold), tt.expect)
		})
	}
}

func TestFillGap(t *testing.T) {
	t.Parallel()
	cases := Results{"CalcTest::testDivide": Failed}
	got := fillGap(cases, newCounts(2, 2, 0), "cppunit")
	want := Results{
		"CalcTest::testDivide": Failed,
		"cppunit_failed_1":     Failed,
		"cppunit_passed_1":     Passed,
		"cppunit_passed_2":     Passed,
	}
	assertResults(t, got, want)

	// The input map is left untouched.
	if len(cases) != 1 {
		t.Errorf("fillGap modified its input: %v", cases)
	}
}

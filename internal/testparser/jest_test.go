package testparser

import "testing"

func TestJestParser(t *testing.T) {
	t.Parallel()
	parser := &JestParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "checkmarks",
			output: "✓ testA\n✕ testB\n○ testC",
			expect: Results{"testA": Passed, "testB": Failed, "testC": Skipped},
		},
		{
			name: "verbose with durations and summary",
			output: `PASS src/sum.test.js
  sum
    ✓ adds numbers (3 ms)
    ✕ divides by zero (1 ms)
    ○ skipped flaky network test

Tests:       1 failed, 1 skipped, 1 passed, 3 total`,
			expect: Results{"adds numbers": Passed, "divides by zero": Failed, "flaky network test": Skipped},
		},
		{
			name:   "summary only",
			output: "Tests: 10 passed, 10 total",
			expect: placeholders("jest", 10, 0, 0),
		},
		{
			name: "too few named tests for the summary",
			output: `✓ only one
Tests:       1 failed, 3 passed, 4 total`,
			expect: placeholders("jest", 3, 1, 0),
		},
		{
			name:   "todo counts as skipped",
			output: "Tests:       2 todo, 1 passed, 3 total",
			expect: placeholders("jest", 1, 0, 2),
		},
		{
			name:   "file lines without verbose output",
			output: "PASS src/a.test.js\nFAIL src/b.test.js (5.2 s)",
			expect: Results{"src/a.test.js": Passed, "src/b.test.js": Failed},
		},
		{
			name:   "file lines with a per-test summary",
			output: "PASS src/a.test.js\nPASS src/b.test.js\nTests:       3 passed, 3 total",
			expect: placeholders("jest", 3, 0, 0),
		},
		{
			name:   "failing file with a per-test summary",
			output: "PASS src/a.test.js\nFAIL src/b.test.js\nTests:       1 failed, 4 passed, 5 total",
			expect: placeholders("jest", 4, 1, 0),
		},
		{
			name:   "ansi colored",
			output: "\x1b[32m✓\x1b[39m \x1b[2madds\x1b[22m",
			expect: Results{"adds": Passed},
		},
		{
			name:   "eslint cross mark is not a jest failure",
			output: "✖ 1 problems (1 error, 0 warnings)",
			expect: Results{},
		},
		{
			name:   "vitest file line is not a jest test",
			output: " ✓ src/math.test.ts (3 tests) 4ms",
			expect: Results{},
		},
		{
			name:   "empty output",
			output: "",
			expect: Results{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, parser.Parse(tt.output), tt.expect)
		})
	}
}

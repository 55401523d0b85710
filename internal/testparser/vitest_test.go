package testparser

import "testing"

func TestVitestParser(t *testing.T) {
	t.Parallel()
	parser := &VitestParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name: "per-test lines with summary",
			output: ` ❯ src/io.test.ts (3 tests | 1 failed | 1 skipped) 12ms
   ✓ reads a file
   × writes a file 3ms
   ↓ streams a file

 Test Files  1 failed (1)
      Tests  1 failed | 1 passed | 1 skipped (3)`,
			expect: Results{"reads a file": Passed, "writes a file": Failed, "streams a file": Skipped},
		},
		{
			name: "file lines only",
			output: ` ✓ src/math.test.ts (2 tests) 4ms
 ❯ src/io.test.ts (2 tests | 1 failed) 12ms`,
			expect: Results{
				"src/math.test.ts_passed_1": Passed,
				"src/math.test.ts_passed_2": Passed,
				"src/io.test.ts_passed_1":   Passed,
				"src/io.test.ts_failed_1":   Failed,
			},
		},
		{
			name:   "summary only",
			output: "      Tests  2 failed | 3 passed (5)",
			expect: placeholders("vitest", 3, 2, 0),
		},
		{
			name:   "indented checkmarks alone are not vitest",
			output: "    ✓ adds\n    ✓ subtracts",
			expect: Results{},
		},
		{
			name:   "jest summary is not vitest",
			output: "Tests: 10 passed, 10 total",
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

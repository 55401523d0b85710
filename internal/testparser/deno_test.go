package testparser

import "testing"

func TestDenoParser(t *testing.T) {
	t.Parallel()
	parser := &DenoParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "pipe format pass",
			output: "ok | 47 passed | 0 failed (123ms)",
			expect: placeholders("deno", 47, 0, 0),
		},
		{
			name:   "pipe format with steps and ignored",
			output: "FAILED | 45 passed (3 steps) | 2 failed | 1 ignored (123ms)",
			expect: placeholders("deno", 45, 2, 1),
		},
		{
			name:   "semicolon format with ignored",
			output: "45 passed; 2 failed; 3 ignored",
			expect: placeholders("deno", 45, 2, 3),
		},
		{
			name: "verbose output",
			output: `running 3 tests from ./tests/math_test.ts
adds numbers ... ok (3ms)
divides by zero ... FAILED (1ms)
rounds ... ignored (0ms)

FAILED | 1 passed | 1 failed | 1 ignored (12ms)`,
			expect: Results{"adds numbers": Passed, "divides by zero": Failed, "rounds": Skipped},
		},
		{
			name:   "cargo result line is left to cargo",
			output: "test result: ok. 47 passed; 0 failed; 0 ignored; 0 measured",
			expect: Results{},
		},
		{
			name:   "unittest verbose line is left to unittest",
			output: "test_add (tests.test_math.MathTest) ... ok",
			expect: Results{},
		},
		{
			name:   "empty output",
			output: "",
			expect: Results{},
		},
		{
			name:   "no test results",
			output: "Check file:///path/to/tests.ts\n",
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

package testparser

import "testing"

func TestDotnetParser(t *testing.T) {
	t.Parallel()
	parser := &DotnetParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "summary line format",
			output: "Passed!  - Failed:     0, Passed:    47, Skipped:     3, Total:    50",
			expect: placeholders("dotnet", 47, 0, 3),
		},
		{
			name: "multi-line format",
			output: `Total tests: 50
     Passed: 45
     Failed: 2
    Skipped: 3`,
			expect: placeholders("dotnet", 45, 2, 3),
		},
		{
			name:   "test summary format",
			output: "Test summary: total: 5, failed: 1, succeeded: 4, skipped: 0, duration: 1.2s",
			expect: placeholders("dotnet", 4, 1, 0),
		},
		{
			name: "two projects add up",
			output: `Passed!  - Failed:     0, Passed:     2, Skipped:     0, Total:     2 - Calc.Tests.dll
Failed!  - Failed:     1, Passed:     1, Skipped:     0, Total:     2 - Io.Tests.dll`,
			expect: placeholders("dotnet", 3, 1, 0),
		},
		{
			name: "normal verbosity",
			output: `Build started...
Build succeeded.
  Passed Calc.Tests.Adds [3 ms]
  Failed Calc.Tests.Divides [1 ms]
  Error Message:
   Assert.Equal() Failure
  Skipped Calc.Tests.Rounds

Failed!  - Failed:     1, Passed:     1, Skipped:     1, Total:     3`,
			expect: Results{
				"Calc.Tests.Adds":    Passed,
				"Calc.Tests.Divides": Failed,
				"Calc.Tests.Rounds":  Skipped,
			},
		},
		{
			name:   "empty output",
			output: "",
			expect: Results{},
		},
		{
			name:   "no test results",
			output: "Build started...\nBuild succeeded.\n",
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

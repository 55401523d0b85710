package testsift_test

import (
	"testing"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
	"github.com/AndreyAkinshin/testsift/pkg/testsift"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", testsift.ExitSuccess, 0},
		{"ExitFailure", testsift.ExitFailure, 1},
		{"ExitConfigError", testsift.ExitConfigError, 2},
		{"ExitNoResults", testsift.ExitNoResults, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("testsift.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in step with the
// codes the CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"ExitSuccess", testsift.ExitSuccess, errors.ExitSuccess},
		{"ExitFailure", testsift.ExitFailure, errors.ExitRuntimeError},
		{"ExitConfigError", testsift.ExitConfigError, errors.ExitConfigError},
		{"ExitNoResults", testsift.ExitNoResults, errors.ExitNoResults},
		{"threshold", testsift.ExitFailure, errors.GetExitCode(errors.Threshold("d", 0.5, 0.1))},
		{"no results", testsift.ExitNoResults, errors.GetExitCode(errors.NoResults("d"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("public %s = %d, internal = %d", tt.name, tt.public, tt.internal)
			}
		})
	}
}

func TestStatusStrings(t *testing.T) {
	tests := []struct {
		public string
		status testparser.Status
	}{
		{testsift.StatusPassed, testparser.Passed},
		{testsift.StatusFailed, testparser.Failed},
		{testsift.StatusSkipped, testparser.Skipped},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.public {
			t.Errorf("%v.String() = %q, want %q", tt.status, got, tt.public)
		}
	}
}

// Package testsift provides public constants for tools that drive the
// testsift CLI.
package testsift

// Exit codes returned by the testsift CLI.
// Scripts wrapping testsift can check these symbolically instead of
// hard-coding numbers.
const (
	// ExitSuccess indicates the output was classified and accepted.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure or a failure ratio above the threshold.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, bad flag, etc.).
	ExitConfigError = 2

	// ExitNoResults indicates that no strategy recognized the test output.
	ExitNoResults = 3
)

// Statuses written to parsed_test_status.json.
const (
	StatusPassed  = "PASSED"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)

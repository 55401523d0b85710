// Package errors provides structured error types and exit codes for testsift.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the testsift CLI.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error or failure ratio above threshold
	ExitConfigError  = 2 // Configuration error (invalid config, bad flag value, etc.)
	ExitNoResults    = 3 // No strategy recognized the test output
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindNoResults
	KindThreshold
)

// String returns a short lowercase name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindNoResults:
		return "no results"
	case KindThreshold:
		return "threshold"
	default:
		return "runtime"
	}
}

// SiftError is the base error type for testsift.
type SiftError struct {
	Kind    ErrorKind
	Message string
	Dir     string // Repository directory if applicable
	Cause   error  // Underlying error
}

func (e *SiftError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Dir != "" {
		return fmt.Sprintf("[%s] %s", e.Dir, msg)
	}
	return msg
}

func (e *SiftError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *SiftError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindNoResults:
		return ExitNoResults
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *SiftError {
	return &SiftError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *SiftError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *SiftError {
	return &SiftError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *SiftError {
	return Config(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *SiftError {
	return &SiftError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *SiftError {
	return &SiftError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// NoResults reports that no strategy recognized the output of a repository.
func NoResults(dir string) *SiftError {
	return &SiftError{
		Kind:    KindNoResults,
		Dir:     dir,
		Message: "no test results could be classified",
	}
}

// Threshold reports a failure ratio above the accepted threshold.
func Threshold(dir string, ratio, threshold float64) *SiftError {
	return &SiftError{
		Kind:    KindThreshold,
		Dir:     dir,
		Message: fmt.Sprintf("failure ratio %.2f%% exceeds threshold %.2f%%", ratio*100, threshold*100),
	}
}

// Is reports whether err is a SiftError of the given kind.
func Is(err error, kind ErrorKind) bool {
	var se *SiftError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *SiftError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitRuntimeError
}

package config

import (
	"fmt"
	"sort"

	"github.com/AndreyAkinshin/testsift/internal/output"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration after defaults and environment overrides.
// Strategy names in languages and aliases must name built-in strategies.
func Validate(cfg *Config) error {
	if cfg.FailureThreshold < 0 || cfg.FailureThreshold > 1 {
		return &ValidationError{Field: "failure_threshold", Message: "must be between 0 and 1"}
	}
	if cfg.ReconcileThreshold <= 0 || cfg.ReconcileThreshold > 1 {
		return &ValidationError{Field: "reconcile_threshold", Message: "must be greater than 0 and at most 1"}
	}
	if cfg.Workers < 1 {
		return &ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if !output.ValidLevel(cfg.LogLevel) {
		return &ValidationError{Field: "log_level", Message: "must be one of trace, debug, info, warn, error"}
	}
	return validateStrategies(cfg)
}

func validateStrategies(cfg *Config) error {
	known := make(map[string]bool)
	for _, name := range testparser.NewRegistry().Names() {
		known[name] = true
	}

	// Sorted so the reported field is stable.
	for _, lang := range sortedKeys(cfg.Languages) {
		for _, name := range cfg.Languages[lang] {
			if !known[normalize(name)] {
				return &ValidationError{
					Field:   fmt.Sprintf("languages.%s", lang),
					Message: fmt.Sprintf("unknown strategy %q", name),
				}
			}
		}
	}
	for _, alias := range sortedKeys(cfg.Aliases) {
		if name := cfg.Aliases[alias]; !known[normalize(name)] {
			return &ValidationError{
				Field:   fmt.Sprintf("aliases.%s", alias),
				Message: fmt.Sprintf("unknown strategy %q", name),
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

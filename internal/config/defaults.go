package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Default configuration values.
const (
	DefaultFailureThreshold   = 0.09
	DefaultReconcileThreshold = 0.5
	DefaultOutputFile         = "parsed_test_status.json"
	DefaultLogFile            = "test_output.txt"
	DefaultLogLevel           = "info"
)

// Environment variables that override file values.
const (
	EnvFailureThreshold = "TESTSIFT_FAILURE_THRESHOLD"
	EnvLogLevel         = "TESTSIFT_LOG_LEVEL"
	EnvWorkers          = "TESTSIFT_WORKERS"
	EnvHistoryDB        = "TESTSIFT_HISTORY_DB"
)

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{FailureThreshold: DefaultFailureThreshold}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
// FailureThreshold is left alone since zero is a meaningful value.
func applyDefaults(cfg *Config) {
	if cfg.ReconcileThreshold == 0 {
		cfg.ReconcileThreshold = DefaultReconcileThreshold
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// ApplyEnv overrides configuration fields from TESTSIFT_* environment
// variables. Malformed numbers are reported as validation errors.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.Getenv)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvFailureThreshold)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ValidationError{Field: EnvFailureThreshold, Message: "must be a number"}
		}
		cfg.FailureThreshold = f
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: EnvWorkers, Message: "must be an integer"}
		}
		cfg.Workers = n
	}
	if v := strings.TrimSpace(getenv(EnvHistoryDB)); v != "" {
		cfg.HistoryDB = v
	}
	return nil
}

// Package config provides loading and validation of the optional
// .testsift.yaml configuration file.
package config

// Config represents the complete .testsift.yaml configuration.
type Config struct {
	FailureThreshold   float64             `yaml:"failure_threshold" json:"failure_threshold"`
	ReconcileThreshold float64             `yaml:"reconcile_threshold" json:"reconcile_threshold"`
	Workers            int                 `yaml:"workers" json:"workers"`
	OutputFile         string              `yaml:"output_file" json:"output_file"`
	LogFile            string              `yaml:"log_file" json:"log_file"`
	LogLevel           string              `yaml:"log_level" json:"log_level"`
	HistoryDB          string              `yaml:"history_db,omitempty" json:"history_db,omitempty"`
	Languages          map[string][]string `yaml:"languages,omitempty" json:"languages,omitempty"`
	Aliases            map[string]string   `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".testsift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, DefaultFailureThreshold, cfg.FailureThreshold)
	assert.Equal(t, DefaultReconcileThreshold, cfg.ReconcileThreshold)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "parsed_test_status.json", cfg.OutputFile)
	assert.Equal(t, "test_output.txt", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_Full(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
failure_threshold: 0.2
reconcile_threshold: 0.8
workers: 3
output_file: status.json
log_file: out.log
log_level: debug
history_db: runs.db
languages:
  java: [maven, junitxml]
aliases:
  surefire3: maven
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.2, cfg.FailureThreshold)
	assert.Equal(t, 0.8, cfg.ReconcileThreshold)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "status.json", cfg.OutputFile)
	assert.Equal(t, "out.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "runs.db", cfg.HistoryDB)
	assert.Equal(t, map[string][]string{"java": {"maven", "junitxml"}}, cfg.Languages)
	assert.Equal(t, map[string]string{"surefire3": "maven"}, cfg.Aliases)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "workers: 2\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultFailureThreshold, cfg.FailureThreshold)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoad_ZeroThresholdKept(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "failure_threshold: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.FailureThreshold)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "workers: [", "failed to parse config file"},
		{"unknown field", "parsers: [jest]\n", "config validation failed"},
		{"wrong type", "workers: many\n", "config validation failed"},
		{"threshold out of range", "failure_threshold: 2\n", "config validation failed"},
		{"root not a mapping", "- a\n- b\n", "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFind(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	yml := filepath.Join(dir, ".testsift.yml")
	require.NoError(t, os.WriteFile(yml, []byte("{}"), 0o644))
	assert.Equal(t, yml, Find(dir))

	yaml := filepath.Join(dir, ".testsift.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte("{}"), 0o644))
	assert.Equal(t, yaml, Find(dir), ".yaml takes precedence")
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()
	env := map[string]string{
		EnvFailureThreshold: "0.25",
		EnvLogLevel:         "DEBUG",
		EnvWorkers:          "6",
		EnvHistoryDB:        "/tmp/h.db",
	}
	cfg := Default()

	require.NoError(t, applyEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, 0.25, cfg.FailureThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "/tmp/h.db", cfg.HistoryDB)
}

func TestApplyEnv_Malformed(t *testing.T) {
	t.Parallel()
	for _, key := range []string{EnvFailureThreshold, EnvWorkers} {
		cfg := Default()
		err := applyEnv(cfg, func(k string) string {
			if k == key {
				return "lots"
			}
			return ""
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, key, verr.Field)
	}
}

func TestLoadAndValidate_Env(t *testing.T) {
	t.Setenv(EnvFailureThreshold, "0.5")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvHistoryDB, "")

	cfg, err := LoadAndValidate(writeConfig(t, "failure_threshold: 0.1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.FailureThreshold, "environment overrides the file")
}

func TestLoadAndValidate_NoFile(t *testing.T) {
	t.Setenv(EnvFailureThreshold, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvHistoryDB, "")

	cfg, err := LoadAndValidate("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAndValidate_UnknownStrategy(t *testing.T) {
	t.Setenv(EnvFailureThreshold, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvHistoryDB, "")

	_, err := LoadAndValidate(writeConfig(t, "languages:\n  java: [maven, ant]\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "languages.java", verr.Field)
}

func TestConfig_NewRegistry(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Languages = map[string][]string{"java": {"JUnitXML", "maven"}, "scala": {"junitxml"}}
	cfg.Aliases = map[string]string{"surefire3": "maven"}

	r := cfg.NewRegistry()

	assert.Equal(t, []string{"junitxml", "maven"}, r.Plan("", "java"))
	assert.Equal(t, []string{"junitxml"}, r.Plan("", "scala"))
	assert.Equal(t, "maven", r.Resolve("surefire3"))
	assert.Equal(t, []string{"gotest"}, r.Plan("", "go"), "untouched languages keep defaults")
}

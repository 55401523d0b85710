// Package main tests for the testsift CLI entry point.
package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
// This is a smoke test to ensure the package compiles without errors.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", os.DevNull, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build main package: %v\n%s", err, out)
	}
}

// TestMain_HelpFlag verifies the --help flag works correctly.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}

	for _, want := range []string{"parse", "classify", "batch", "strategies"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("--help output missing %q:\n%s", want, out)
		}
	}
}

// TestMain_VersionFlag verifies the --version flag works correctly.
func TestMain_VersionFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--version failed: %v\noutput: %s", err, out)
	}

	if !strings.Contains(string(out), "testsift") {
		t.Errorf("--version output should contain 'testsift', got: %s", out)
	}
}

// TestMain_ExitCodes verifies the process exit codes of a built binary.
func TestMain_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bin := filepath.Join(dir, "testsift")
	if out, err := exec.Command("go", "build", "-o", bin, ".").CombinedOutput(); err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}

	noise := filepath.Join(dir, "noise.txt")
	passing := filepath.Join(dir, "passing.txt")
	if err := os.WriteFile(noise, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(passing, []byte("--- PASS: TestA (0.00s)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"classified", []string{"classify", passing}, 0},
		{"no results", []string{"classify", noise}, 3},
		{"unknown flag", []string{"classify", "--bogus"}, 2},
		{"missing file", []string{"classify", filepath.Join(dir, "missing")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(bin, append([]string{"--no-color", "--config", os.DevNull}, tt.args...)...)
			cmd.Dir = dir
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run: %v", err)
			}
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

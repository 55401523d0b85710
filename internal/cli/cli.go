// Package cli provides the command-line interface for testsift.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/output"
)

// Version is set at build time.
var Version = "dev"

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return RunWithIO(args, os.Stdin, output.New())
}

// RunWithIO executes the CLI against the given input and writer (for testing).
func RunWithIO(args []string, stdin io.Reader, out *output.Writer) int {
	app := &app{out: out, stdin: stdin}
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(out.Out())
	root.SetErr(out.ErrOut())

	err := root.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errors.KindThreshold) {
		// Threshold failures were already reported by the summary.
		out.ErrorPrefix("%v", err)
	}
	return errors.GetExitCode(err)
}

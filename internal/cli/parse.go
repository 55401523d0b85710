package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/output"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
	"github.com/AndreyAkinshin/testsift/internal/verify"
)

// sampleSize is how many classified tests the parse summary shows.
const sampleSize = 5

type parseFlags struct {
	pythonRepo bool
	threshold  float64
	noSave     bool
	db         string
}

func newParseCommand(a *app) *cobra.Command {
	var f parseFlags
	cmd := &cobra.Command{
		Use:   "parse <dir|Dockerfile>",
		Short: "Classify a repository's test output and write parsed_test_status.json",
		Long: `Read repo_metadata.json (or the legacy test_commands.json) and
test_output.txt from a repository directory, classify the output and save
parsed_test_status.json next to it. A Dockerfile path means its directory.

Exit code: 0 when the failure ratio is within the threshold, 1 when it is
exceeded or an error occurred, 3 when no test results could be classified.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("failure-threshold") {
				f.threshold = a.cfg.FailureThreshold
			}
			if f.threshold < 0 || f.threshold > 1 {
				return errors.Configf("--failure-threshold must be between 0 and 1, got %g", f.threshold)
			}
			return runParse(cmd.Context(), a, args[0], f)
		},
	}

	cmd.Flags().BoolVar(&f.pythonRepo, "python-repo", false, "treat the repository as Python regardless of its metadata")
	cmd.Flags().Float64Var(&f.threshold, "failure-threshold", verify.DefaultFailureThreshold, "maximum accepted share of failed tests")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not write parsed_test_status.json")
	cmd.Flags().StringVar(&f.db, "db", "", "record the run in this history database")
	return cmd
}

func runParse(ctx context.Context, a *app, path string, f parseFlags) error {
	dir, err := verify.ResolveDir(path)
	if err != nil {
		return err
	}
	a.log.Infof("working directory: %s", dir)

	store, err := a.openHistory(f.db)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	outcome, runErr := verify.Run(ctx, dir, verify.Options{
		Registry:         a.registry(),
		Logger:           a.log,
		FailureThreshold: f.threshold,
		LogFile:          a.cfg.LogFile,
		OutputFile:       a.cfg.OutputFile,
		PythonRepo:       f.pythonRepo,
		NoSave:           f.noSave,
	})

	if store != nil {
		if _, err := store.RecordRun(ctx, verify.HistoryRun(outcome, dir, runErr)); err != nil {
			a.log.Warnf("recording history: %v", err)
		}
	}

	if errors.Is(runErr, errors.KindNoResults) {
		printTroubleshooting(a.out)
	}
	if runErr != nil {
		return runErr
	}

	printOutcome(a.out, outcome)
	if !outcome.Verdict.Accepted {
		a.out.FinalFailure("%s", outcome.Verdict.Message())
		return errors.Threshold(dir, outcome.Verdict.Ratio, outcome.Verdict.Threshold)
	}
	a.out.FinalSuccess("%s", outcome.Verdict.Message())
	return nil
}

func printOutcome(w *output.Writer, o *verify.Outcome) {
	counts := o.Result.Counts()

	w.SummaryHeader("Parsing Summary")
	w.SummaryItem("parser used", o.Result.ParserLabel())
	if o.Result.UsedFallback() {
		w.SummaryItem("selection", "fallback sweep")
	}
	w.SummaryItem("total tests", fmt.Sprint(counts.Total))
	w.SummaryPassed("passed", fmt.Sprint(counts.Passed))
	if counts.Failed > 0 {
		w.SummaryFailed("failed", fmt.Sprint(counts.Failed))
	} else {
		w.SummaryItem("failed", "0")
	}
	w.SummaryItem("skipped", fmt.Sprint(counts.Skipped))

	printSample(w, o.Result.Tests)

	if o.RecordPath != "" {
		w.Info("")
		w.Info("Saved parsed test results to: %s", o.RecordPath)
	}
}

// printSample lists the first few tests in name order.
func printSample(w *output.Writer, tests testparser.Results) {
	names := tests.Names()
	if len(names) == 0 {
		return
	}
	w.Section(fmt.Sprintf("Sample Test Results (first %d)", min(sampleSize, len(names))))
	for _, name := range names[:min(sampleSize, len(names))] {
		w.TestLine(name, tests[name].String())
	}
	if len(names) > sampleSize {
		w.Hint("... and %d more tests", len(names)-sampleSize)
	}
}

func printTroubleshooting(w *output.Writer) {
	w.Hint("Troubleshooting tips:")
	w.Hint("  1. Make sure the container test run produced test_output.txt")
	w.Hint("  2. Check that test_output.txt contains test runner output")
	w.Hint("  3. Verify that repo_metadata.json names the correct test_framework")
	w.Hint("  4. Try --python-repo for Python repositories")
}

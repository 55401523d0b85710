package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/verify"
)

type batchFlags struct {
	parseFlags
	workers int
}

func newBatchCommand(a *app) *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch <root>",
		Short: "Run parse over every repository under a directory",
		Long: `Find every directory under root that holds the captured test output
and run the parse pipeline on each, several at a time. Results are shown
as a table and optionally recorded in the history database.

Exit code: 0 when every repository was accepted, 1 otherwise.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("failure-threshold") {
				f.threshold = a.cfg.FailureThreshold
			}
			if f.threshold < 0 || f.threshold > 1 {
				return errors.Configf("--failure-threshold must be between 0 and 1, got %g", f.threshold)
			}
			if !cmd.Flags().Changed("workers") {
				f.workers = a.cfg.Workers
			}
			if f.workers < 1 {
				return errors.Configf("--workers must be at least 1, got %d", f.workers)
			}
			return runBatch(cmd, a, args[0], f)
		},
	}

	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "repositories classified in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.pythonRepo, "python-repo", false, "treat every repository as Python")
	cmd.Flags().Float64Var(&f.threshold, "failure-threshold", verify.DefaultFailureThreshold, "maximum accepted share of failed tests")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not write parsed_test_status.json files")
	cmd.Flags().StringVar(&f.db, "db", "", "record the runs in this history database")
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, root string, f batchFlags) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrap(err, "resolving root")
	}
	if _, err := verify.ResolveDir(root); err != nil {
		return err
	}

	store, err := a.openHistory(f.db)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	items, err := verify.Batch(cmd.Context(), root, verify.BatchOptions{
		Options: verify.Options{
			Registry:         a.registry(),
			Logger:           a.log,
			FailureThreshold: f.threshold,
			LogFile:          a.cfg.LogFile,
			OutputFile:       a.cfg.OutputFile,
			PythonRepo:       f.pythonRepo,
			NoSave:           f.noSave,
		},
		Workers: f.workers,
		History: store,
	})
	if err != nil {
		return errors.Wrap(err, "batch")
	}
	if len(items) == 0 {
		a.out.Warning("no directories with %s under %s", a.cfg.LogFile, root)
		return nil
	}

	rows := make([][]string, 0, len(items))
	var accepted, rejected, unclassified int
	for _, item := range items {
		rel, err := filepath.Rel(root, item.Dir)
		if err != nil {
			rel = item.Dir
		}
		row := []string{rel, "-", "-", "-", "-", "-", ""}
		if o := item.Outcome; o != nil && !o.Result.Empty() {
			c := o.Result.Counts()
			row[1] = o.Result.ParserLabel()
			row[2] = fmt.Sprint(c.Passed)
			row[3] = fmt.Sprint(c.Failed)
			row[4] = fmt.Sprint(c.Skipped)
			row[5] = fmt.Sprintf("%.1f%%", c.FailureRatio()*100)
		}
		switch {
		case errors.Is(item.Err, errors.KindNoResults):
			row[6] = "no results"
			unclassified++
		case item.Err != nil:
			row[6] = "error"
			unclassified++
		case item.Outcome.Verdict.Accepted:
			row[6] = "accepted"
			accepted++
		default:
			row[6] = "rejected"
			rejected++
		}
		rows = append(rows, row)
	}

	a.out.Table([]string{"Repository", "Parser", "Passed", "Failed", "Skipped", "Failure Ratio", "Verdict"}, rows)
	for _, item := range items {
		if item.Err != nil && !errors.Is(item.Err, errors.KindNoResults) {
			a.out.Warning("%v", item.Err)
		}
	}

	summary := fmt.Sprintf("%d accepted, %d rejected, %d unclassified", accepted, rejected, unclassified)
	if rejected+unclassified > 0 {
		a.out.FinalFailure("%s", summary)
		return errors.Newf("%d of %d repositories not accepted", rejected+unclassified, len(items))
	}
	a.out.FinalSuccess("%s", summary)
	return nil
}

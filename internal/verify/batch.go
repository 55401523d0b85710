package verify

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/testsift/internal/history"
)

// BatchOptions configures Batch.
type BatchOptions struct {
	Options
	Workers int            // concurrent repositories; <1 means 1
	History *history.Store // optional run history
}

// BatchItem is the outcome for one repository of a batch.
type BatchItem struct {
	Dir     string
	Outcome *Outcome // nil when the run failed before classification
	Err     error
}

// Discover returns every directory under root (root included) that holds
// logFile, sorted. Hidden directories are skipped.
func Discover(root, logFile string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if info, err := os.Stat(filepath.Join(path, logFile)); err == nil && info.Mode().IsRegular() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Batch runs the pipeline for every directory under root holding the log
// file, at most Workers at a time. Per-repository failures are reported in
// the items and do not stop the batch; only a canceled context or a history
// write failure does. Items are sorted by directory.
func Batch(ctx context.Context, root string, opts BatchOptions) ([]BatchItem, error) {
	opts.Options = opts.Options.withDefaults()
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	dirs, err := Discover(root, opts.LogFile)
	if err != nil {
		return nil, err
	}
	opts.Logger.Infof("found %d repositories under %s", len(dirs), root)

	batchID := history.NewBatchID()
	items := make([]BatchItem, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, runErr := Run(ctx, dir, opts.Options)
			items[i] = BatchItem{Dir: dir, Outcome: outcome, Err: runErr}
			if runErr != nil {
				opts.Logger.Warnf("%s: %v", dir, runErr)
			}
			if opts.History == nil {
				return nil
			}
			_, err := opts.History.RecordRun(ctx, historyRun(batchID, items[i]))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

func historyRun(batchID string, item BatchItem) history.Run {
	run := history.Run{BatchID: batchID, Directory: item.Dir}
	if item.Err != nil {
		run.Error = item.Err.Error()
	}
	o := item.Outcome
	if o == nil {
		return run
	}
	if o.Metadata != nil {
		run.Framework = o.Metadata.TestFramework
	}
	run.Language = o.Language
	run.Parser = o.Result.ParserLabel()
	run.Fallback = o.Result.UsedFallback()
	counts := o.Result.Counts()
	run.Passed, run.Failed, run.Skipped, run.Total = counts.Passed, counts.Failed, counts.Skipped, counts.Total
	run.FailureRatio = counts.FailureRatio()
	run.Accepted = item.Err == nil && o.Verdict.Accepted
	return run
}

// HistoryRun converts a single pipeline outcome into a history entry.
func HistoryRun(outcome *Outcome, dir string, err error) history.Run {
	return historyRun("", BatchItem{Dir: dir, Outcome: outcome, Err: err})
}

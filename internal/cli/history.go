package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/history"
)

type historyFlags struct {
	db    string
	limit int
	dir   string
}

func newHistoryCommand(a *app) *cobra.Command {
	var f historyFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded classification runs",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openHistory(f.db)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.Config("no history database: pass --db or set history_db")
			}
			defer store.Close()

			var runs []history.Run
			if f.dir != "" {
				runs, err = store.RunsForDirectory(cmd.Context(), f.dir)
				if f.limit > 0 && len(runs) > f.limit {
					runs = runs[:f.limit]
				}
			} else {
				runs, err = store.RecentRuns(cmd.Context(), f.limit)
			}
			if err != nil {
				return errors.Wrap(err, "reading history")
			}
			printRuns(a, runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.db, "db", "", "history database (default: history_db from the configuration)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 20, "number of runs to show; 0 shows all")
	cmd.Flags().StringVar(&f.dir, "dir", "", "only show runs of this repository directory")
	return cmd
}

func printRuns(a *app, runs []history.Run) {
	if len(runs) == 0 {
		a.out.Info("no runs recorded")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		verdict := "rejected"
		switch {
		case r.Error != "":
			verdict = "error"
		case r.Accepted:
			verdict = "accepted"
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Directory,
			r.Parser,
			itoa(r.Passed),
			itoa(r.Failed),
			itoa(r.Skipped),
			fmt.Sprintf("%.1f%%", r.FailureRatio*100),
			verdict,
		})
	}
	a.out.Table([]string{"When", "Repository", "Parser", "Passed", "Failed", "Skipped", "Failure Ratio", "Verdict"}, rows)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/testsift/internal/config"
	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/history"
	"github.com/AndreyAkinshin/testsift/internal/output"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// app carries state shared by all commands of one invocation.
type app struct {
	out   *output.Writer
	stdin io.Reader

	configPath string
	logLevel   string
	quiet      bool
	noColor    bool

	cfg *config.Config
	log *output.Logger
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testsift",
		Short: "Classify raw test runner output into per-test outcomes",
		Long: `testsift reads the console output of test runners (Jest, pytest, go test,
Cargo, Maven, GoogleTest, dotnet test and many more) and turns it into a
mapping from test identifier to PASSED, FAILED or SKIPPED.

Strategies are chosen from the framework and language hints of a
repository and fall back to every known strategy when the hints match
nothing. Runners that only print totals are expanded into placeholder
entries such as jest_passed_1.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: .testsift.yaml in the current directory)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only print results and errors")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	cmd.SetVersionTemplate("testsift {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Config(err.Error())
	})

	cmd.AddCommand(
		newParseCommand(a),
		newClassifyCommand(a),
		newBatchCommand(a),
		newStrategiesCommand(a),
		newHistoryCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// setup loads configuration and the logger before any command runs.
func (a *app) setup() error {
	if a.noColor {
		a.out.SetColor(false)
	}
	a.out.SetQuiet(a.quiet)

	path := a.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Find(wd)
		}
	}
	cfg, err := config.LoadAndValidate(path)
	if err != nil {
		return &errors.SiftError{Kind: errors.KindConfig, Message: "invalid configuration", Cause: err}
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		if !output.ValidLevel(a.logLevel) {
			return errors.Configf("invalid --log-level %q", a.logLevel)
		}
		level = a.logLevel
	}
	if a.quiet {
		level = output.LevelError
	}
	a.log = output.NewLogger(a.out.ErrOut(), level)
	if path != "" {
		a.log.Debugf("loaded configuration from %s", path)
	}
	return nil
}

func (a *app) registry() *testparser.Registry {
	return a.cfg.NewRegistry()
}

// openHistory opens the history database named by flag or configuration.
// It returns nil when neither names one.
func (a *app) openHistory(flagPath string) (*history.Store, error) {
	path := flagPath
	if path == "" {
		path = a.cfg.HistoryDB
	}
	if path == "" {
		return nil, nil
	}
	store, err := history.NewStore(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening history database")
	}
	return store, nil
}

// exactArgs is cobra.ExactArgs reporting a configuration error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Configf("%s expects %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs reporting a configuration error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return errors.Configf("%s accepts at most %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the testsift version",
		Args:  exactArgs(0),
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "testsift %s\n", Version)
			return err
		},
	}
}

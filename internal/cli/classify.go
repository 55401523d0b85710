package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
	"github.com/AndreyAkinshin/testsift/internal/verify"
)

type classifyFlags struct {
	framework string
	language  string
	json      bool
	reasons   bool
}

func newClassifyCommand(a *app) *cobra.Command {
	var f classifyFlags
	cmd := &cobra.Command{
		Use:   "classify [file|-]",
		Short: "Classify raw test output from a file or standard input",
		Long: `Classify test runner output without any repository metadata. Hints
narrow the strategies tried first; without hints, or when the hinted
strategies find nothing, every strategy is tried.

Exit code: 0 when something was classified, 3 when nothing was.`,
		Example: `  go test -v ./... | testsift classify --framework go_test
  testsift classify build.log --language java --json
  testsift classify test_output.txt --reasons`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			content, err := readInput(a.stdin, path)
			if err != nil {
				return err
			}
			return runClassify(a, content, f)
		},
	}

	cmd.Flags().StringVar(&f.framework, "framework", "", "test framework hint (e.g. jest, go_test, surefire)")
	cmd.Flags().StringVar(&f.language, "language", "", "language hint (e.g. javascript, python, cpp)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the parsed_test_status.json document")
	cmd.Flags().BoolVar(&f.reasons, "reasons", false, "show failure messages where a strategy can recover them")
	return cmd
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return "", errors.NotFound("input file", path)
	}
	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// classifyReport is the --json document: the record plus optional reasons.
type classifyReport struct {
	verify.Record
	Reasons map[string]string `json:"failure_reasons,omitempty"`
}

func runClassify(a *app, content string, f classifyFlags) error {
	registry := a.registry()
	result := verify.Classify(registry, a.log, content, f.framework, f.language)
	if result.Empty() {
		return errors.NoResults("input")
	}

	var reasons map[string]string
	if f.reasons {
		reasons = registry.Reasons(content, result)
	}

	if f.json {
		return writeJSON(a.out.Out(), classifyReport{Record: verify.NewRecord(result), Reasons: reasons})
	}

	for _, name := range result.Tests.Names() {
		status := result.Tests[name]
		a.out.TestLine(name, status.String())
		if reason, ok := reasons[name]; ok && status == testparser.Failed {
			a.out.Hint("         %s", reason)
		}
	}

	counts := result.Counts()
	a.out.Info("")
	a.out.Info("%s: %d passed, %d failed, %d skipped, %d total",
		result.ParserLabel(), counts.Passed, counts.Failed, counts.Skipped, counts.Total)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

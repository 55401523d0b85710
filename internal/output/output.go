// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stdout),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetColor forces colour output on or off.
func (w *Writer) SetColor(enabled bool) {
	w.color = enabled
}

// Out returns the stdout writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// ErrOut returns the stderr writer.
func (w *Writer) ErrOut() io.Writer {
	return w.err
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// paint renders s with the given attributes when colour is enabled.
func (w *Writer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if w.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.FgGreen))
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln("%s %s", w.paint("warning:", color.FgYellow), fmt.Sprintf(format, args...))
}

// ErrorPrefix prints an error message with testsift prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.Errorln("%s %s", w.paint("testsift:", color.FgRed), fmt.Sprintf(format, args...))
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s", w.paint("=== "+title+" ===", color.Bold))
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// Table renders rows under headers with tablewriter.
func (w *Writer) Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w.out)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		// tablewriter needs every row as wide as the header.
		if len(row) < len(headers) {
			row = append(append([]string(nil), row...), make([]string, len(headers)-len(row))...)
		}
		table.Append(row)
	}
	table.Render()
}

// Status renders a test outcome label in its colour: green for PASSED,
// red for FAILED and yellow for everything else.
func (w *Writer) Status(status string) string {
	switch status {
	case "PASSED":
		return w.paint(status, color.FgGreen)
	case "FAILED":
		return w.paint(status, color.FgRed)
	default:
		return w.paint(status, color.FgYellow)
	}
}

// TestLine prints one classified test with its status.
func (w *Writer) TestLine(name, status string) {
	w.Println("%s  %s", w.Status(fmt.Sprintf("%-7s", status)), name)
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Println("%s", w.paint("=== "+title+" ===", color.Bold, color.FgCyan))
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.paint(Title(label)+":", color.Faint), value)
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.paint(Title(label)+":", color.Faint), w.paint(value, color.FgGreen))
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.paint(Title(label)+":", color.Faint), w.paint(value, color.FgRed))
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.FgGreen))
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.FgRed))
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println("%s", w.paint(fmt.Sprintf(format, args...), color.Faint))
}

// Title converts a label such as "failure ratio" to "Failure Ratio".
func Title(label string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(label, "_", " "))
}

// isTerminal reports whether f is a terminal that should receive colour.
func isTerminal(f *os.File) bool {
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/toyz/resterr/internal/errors"
)

// DiagnosticReporter renders located diagnostics the way compilers do:
// "file:line:col: error[Code]: message", followed by the cause and hints.
type DiagnosticReporter struct {
	verbose   bool
	useColors bool
	out       io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose:   verbose,
		useColors: !color.NoColor,
		out:       os.Stderr,
	}
}

// SetWriter redirects the report, keeping colors
func (r *DiagnosticReporter) SetWriter(out io.Writer) {
	r.out = out
}

// SetOutput redirects the report and turns colors off
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
	r.useColors = false
}

var (
	locationColor = color.New(color.Bold)
	codeColor     = color.New(color.FgRed, color.Bold)
	hintColor     = color.New(color.FgCyan)
	warningColor  = color.New(color.FgYellow, color.Bold)
)

// ReportWarning prints a warning with optional suggestions
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	r.paint(warningColor, "warning")
	fmt.Fprintf(r.out, ": %s\n", message)
	r.printSuggestions(suggestions)
}

// ReportError prints every diagnostic contained in err
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, d := range multi.Errors {
			r.reportDiagnostic(d)
		}
		if multi.Count() > 1 {
			fmt.Fprintf(r.out, "%d errors\n", multi.Count())
		}
		return
	}

	var d errors.Diagnostic
	if stderrors.As(err, &d) {
		r.reportDiagnostic(d)
		return
	}
	r.paint(codeColor, "error")
	fmt.Fprintf(r.out, ": %s\n", err.Error())
}

func (r *DiagnosticReporter) reportDiagnostic(d errors.Diagnostic) {
	message := d.Error()
	var context map[string]any
	if base, ok := d.(*errors.BaseError); ok {
		message = base.Message
		context = base.Context()
	}

	if loc := d.Location(); !loc.IsEmpty() {
		r.paint(locationColor, loc.String()+": ")
	}
	r.paint(codeColor, fmt.Sprintf("error[%s]", d.ErrorCode()))
	fmt.Fprintf(r.out, ": %s\n", message)

	for cause, depth := d.Unwrap(), 0; cause != nil; cause, depth = stderrors.Unwrap(cause), depth+1 {
		fmt.Fprintf(r.out, "    %scaused by: %s\n", strings.Repeat("  ", depth), cause.Error())
		if !r.verbose {
			break
		}
	}

	if r.verbose && len(context) > 0 {
		keys := make([]string, 0, len(context))
		for key := range context {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(r.out, "    %s: %v\n", key, context[key])
		}
	}

	r.printSuggestions(d.Suggestions())
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	for _, suggestion := range suggestions {
		fmt.Fprint(r.out, "    ")
		r.paint(hintColor, "hint")
		fmt.Fprintf(r.out, ": %s\n", suggestion)
	}
}

func (r *DiagnosticReporter) paint(c *color.Color, text string) {
	if r.useColors {
		_, _ = c.Fprint(r.out, text)
		return
	}
	fmt.Fprint(r.out, text)
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	EnumsFound        int
	EnumsGenerated    int
	EnumsFailed       int
	GeneratedFiles    []string
	RemovedFiles      []string
}

// Stats returns the summary in the form DiagnosticSystem.Summary prints
func (s GenerationSummary) Stats() map[string]any {
	return map[string]any{
		"Packages processed": s.PackagesProcessed,
		"Enums found":        s.EnumsFound,
		"Enums generated":    s.EnumsGenerated,
		"Enums failed":       s.EnumsFailed,
	}
}

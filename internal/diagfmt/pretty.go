// Package diagfmt renders lint results for humans and machines: a pretty
// format with source context, a grep-friendly short format, and JSON.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"edgelint/internal/linter"
)

// Pretty formats one file's diagnostics:
//
//	<path>:<line>:<col>: <severity> <rule-id>: <message>
//
// followed, when ShowSource is set, by the source line and a ^~~~ underline
// covering the reported span.
func Pretty(w io.Writer, res *linter.Result, opts PrettyOpts) error {
	diags := res.Diagnostics
	if opts.Max > 0 && opts.Max < len(diags) {
		diags = diags[:opts.Max]
	}

	var lines []string
	if opts.ShowSource {
		lines = strings.Split(res.Source, "\n")
	}

	for i := range diags {
		d := &diags[i]
		sev := severityColor(d.Severity, opts.Color).Sprint(d.Severity.String())
		id := ruleColor(opts.Color).Sprint(d.RuleID)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			res.Filename, d.Line, d.Column, sev, id, d.Message); err != nil {
			return err
		}
		if opts.ShowSource {
			if err := writeContext(w, lines, d, opts.Color); err != nil {
				return err
			}
		}
	}

	if truncated := len(res.Diagnostics) - len(diags); truncated > 0 {
		if _, err := fmt.Fprintf(w, "%s: %d more diagnostics not shown\n", res.Filename, truncated); err != nil {
			return err
		}
	}
	return nil
}

// Short formats one diagnostic per line with no context, for editors and
// grep pipelines.
func Short(w io.Writer, res *linter.Result) error {
	for i := range res.Diagnostics {
		d := &res.Diagnostics[i]
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n",
			res.Filename, d.Line, d.Column, d.Severity.String(), d.RuleID, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// Summary prints the run totals after all per-file output.
func Summary(w io.Writer, results []*linter.Result, opts PrettyOpts) error {
	var errors, warnings, fixableErrors, fixableWarnings, fixed int
	for _, res := range results {
		errors += res.ErrorCount
		warnings += res.WarningCount
		fixableErrors += res.FixableErrorCount
		fixableWarnings += res.FixableWarningCount
		if res.Fixed {
			fixed++
		}
	}

	problems := errors + warnings
	if problems == 0 {
		if fixed > 0 {
			_, err := fmt.Fprintf(w, "fixed %d file(s), no problems remaining\n", fixed)
			return err
		}
		return nil
	}

	c := color.New(color.Bold)
	if errors > 0 {
		c.Add(color.FgRed)
	} else {
		c.Add(color.FgYellow)
	}
	if !opts.Color {
		c.DisableColor()
	}
	line := fmt.Sprintf("%d problem(s) (%d error(s), %d warning(s))", problems, errors, warnings)
	if _, err := fmt.Fprintln(w, c.Sprint(line)); err != nil {
		return err
	}
	if fixable := fixableErrors + fixableWarnings; fixable > 0 {
		if _, err := fmt.Fprintf(w, "%d fixable with the --fix option\n", fixable); err != nil {
			return err
		}
	}
	return nil
}

// writeContext prints the source line and a caret underline. Widths are
// computed with runewidth so the caret lands under wide characters too.
func writeContext(w io.Writer, lines []string, d *linter.Diagnostic, colored bool) error {
	if d.Line < 1 || d.Line > len(lines) {
		return nil
	}
	line := lines[d.Line-1]
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return err
	}

	col := d.Column
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	span := 1
	if d.EndLine == d.Line && d.EndColumn > d.Column {
		end := d.EndColumn
		if end > len(line) {
			end = len(line)
		}
		if width := runewidth.StringWidth(line[col:end]); width > 1 {
			span = width
		}
	}

	underline := "^" + strings.Repeat("~", span-1)
	marker := severityColor(d.Severity, colored).Sprint(underline)
	_, err := fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
	return err
}

func severityColor(s linter.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch s {
	case linter.Error:
		c = color.New(color.FgRed, color.Bold)
	case linter.Warn:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgWhite)
	}
	if !enabled {
		c.DisableColor()
	}
	return c
}

func ruleColor(enabled bool) *color.Color {
	c := color.New(color.FgCyan)
	if !enabled {
		c.DisableColor()
	}
	return c
}

package diagfmt

import (
	"encoding/json"
	"io"

	"edgelint/internal/linter"
)

// DiagnosticJSON mirrors one diagnostic for machine consumption.
type DiagnosticJSON struct {
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
	Fixable   bool   `json:"fixable,omitempty"`
}

// FileJSON is one file's lint outcome.
type FileJSON struct {
	Path         string           `json:"path"`
	ErrorCount   int              `json:"error_count"`
	WarningCount int              `json:"warning_count"`
	Fixed        bool             `json:"fixed,omitempty"`
	Output       string           `json:"output,omitempty"`
	Diagnostics  []DiagnosticJSON `json:"diagnostics"`
}

// RunJSON is the root JSON document for a whole run.
type RunJSON struct {
	Files        []FileJSON `json:"files"`
	ErrorCount   int        `json:"error_count"`
	WarningCount int        `json:"warning_count"`
}

// BuildRunJSON assembles the output document without serializing it.
func BuildRunJSON(results []*linter.Result, opts JSONOpts) RunJSON {
	out := RunJSON{Files: make([]FileJSON, 0, len(results))}
	for _, res := range results {
		f := FileJSON{
			Path:         res.Filename,
			ErrorCount:   res.ErrorCount,
			WarningCount: res.WarningCount,
			Fixed:        res.Fixed,
			Diagnostics:  make([]DiagnosticJSON, 0, len(res.Diagnostics)),
		}
		if opts.IncludeOutput {
			f.Output = res.Output
		}
		for i := range res.Diagnostics {
			d := &res.Diagnostics[i]
			f.Diagnostics = append(f.Diagnostics, DiagnosticJSON{
				RuleID:    d.RuleID,
				Severity:  d.Severity.String(),
				Message:   d.Message,
				Line:      d.Line,
				Column:    d.Column,
				EndLine:   d.EndLine,
				EndColumn: d.EndColumn,
				Fixable:   d.Fix != nil,
			})
		}
		out.Files = append(out.Files, f)
		out.ErrorCount += res.ErrorCount
		out.WarningCount += res.WarningCount
	}
	return out
}

// JSON serializes a whole run as one document.
func JSON(w io.Writer, results []*linter.Result, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildRunJSON(results, opts))
}

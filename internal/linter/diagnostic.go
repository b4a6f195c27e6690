package linter

import (
	"sort"
	"strconv"

	"edgelint/internal/fix"
	"edgelint/internal/rule"
)

// Severity grades a diagnostic. Off excludes a rule from execution and never
// appears in output.
type Severity int

const (
	Off Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "off"
}

// NormalizeSeverity maps user-supplied config values to a Severity. Textual
// "off"/"warn"/"error" and numeric 0/1/2 are accepted; anything unrecognized
// is Off — config is user data and never causes an error.
func NormalizeSeverity(v any) Severity {
	switch s := v.(type) {
	case Severity:
		return clampSeverity(int(s))
	case int:
		return clampSeverity(s)
	case int64:
		return clampSeverity(int(s))
	case float64:
		return clampSeverity(int(s))
	case string:
		switch s {
		case "off":
			return Off
		case "warn":
			return Warn
		case "error":
			return Error
		}
		if n, err := strconv.Atoi(s); err == nil {
			return clampSeverity(n)
		}
	}
	return Off
}

func clampSeverity(n int) Severity {
	if n == int(Warn) || n == int(Error) {
		return Severity(n)
	}
	return Off
}

// Diagnostic is one lint message. Line is 1-based, Column 0-based; the end
// position is optional (zero when absent). Fix, when present, is the single
// auto-applicable edit for this diagnostic; Suggestions are only surfaced
// for manual selection.
type Diagnostic struct {
	RuleID      string
	Severity    Severity
	Message     string
	Line        int
	Column      int
	EndLine     int
	EndColumn   int
	Fix         *fix.Fix
	Suggestions []rule.Suggestion
}

// sortDiagnostics orders by (line, column) ascending, keeping the emission
// order of co-located diagnostics stable.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
}

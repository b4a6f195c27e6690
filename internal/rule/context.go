package rule

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"edgelint/internal/fix"
	"edgelint/internal/source"
	"edgelint/internal/token"
)

// Loc is an explicit diagnostic location: 1-based line, 0-based column.
// End fields are optional (zero means absent).
type Loc struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Report is one emitted diagnostic, before the orchestrator attaches the
// rule id and severity.
type Report struct {
	Loc         Loc
	Message     string
	Fix         *fix.Fix
	Suggestions []Suggestion
}

// Suggestion is a proposed edit surfaced for manual application only; the
// orchestrator never applies it automatically.
type Suggestion struct {
	Desc string
	Fix  fix.Fix
}

// Descriptor carries one report: a location source (Node or Loc), a message
// source (MessageID or Message), interpolation data, and optional fix and
// suggestion callbacks.
type Descriptor struct {
	Node *token.Token
	Loc  *Loc

	MessageID string
	Message   string
	Data      map[string]string

	Fix     func(fix.Fixer) []fix.Fix
	Suggest []SuggestDescriptor
}

// SuggestDescriptor produces one suggestion: a description (literal or via
// message id) plus a fix callback.
type SuggestDescriptor struct {
	MessageID string
	Desc      string
	Data      map[string]string
	Fix       func(fix.Fixer) []fix.Fix
}

// Context is the reporting surface handed to one rule for one file's one
// pass. It resolves locations and message templates, captures fixes and
// suggestions, and accumulates the rule's reports.
type Context struct {
	meta     Meta
	index    *source.Index
	options  json.RawMessage
	settings map[string]any
	reports  []Report
}

// NewContext builds a context for one (rule, file, pass) combination.
func NewContext(meta Meta, index *source.Index, options json.RawMessage, settings map[string]any) *Context {
	return &Context{
		meta:     meta,
		index:    index,
		options:  options,
		settings: settings,
	}
}

// Index exposes the pass's source index to the rule.
func (c *Context) Index() *source.Index { return c.index }

// Meta returns the rule's static metadata.
func (c *Context) Meta() Meta { return c.meta }

// Setting returns one entry of the shared settings bag.
func (c *Context) Setting(key string) (any, bool) {
	v, ok := c.settings[key]
	return v, ok
}

// DecodeOptions unmarshals the rule's configured options into out. Rules
// with no configured options get a no-op.
func (c *Context) DecodeOptions(out any) error {
	if len(c.options) == 0 {
		return nil
	}
	return json.Unmarshal(c.options, out)
}

// Reports returns everything emitted so far.
func (c *Context) Reports() []Report { return c.reports }

// Report resolves and records one diagnostic. A descriptor without a
// location source, without a message source, or naming an unknown message id
// is a programming error in the rule and panics; the orchestrator's per-rule
// isolation turns that into a synthetic error diagnostic during dispatch.
// A panicking fix callback is swallowed: the diagnostic is still emitted,
// just without the fix.
func (c *Context) Report(d Descriptor) {
	rep := Report{
		Loc:     c.resolveLoc(d),
		Message: c.resolveMessage(d.MessageID, d.Message, d.Data),
	}

	if d.Fix != nil {
		if fixes := collectFixes(d.Fix); len(fixes) > 0 {
			filtered := fix.NonOverlapping(fixes)
			if merged, ok := fix.MergeForDiagnostic(c.index.Text(), filtered); ok {
				rep.Fix = &merged
			}
		}
	}

	for _, s := range d.Suggest {
		desc := c.resolveMessage(s.MessageID, s.Desc, s.Data)
		fixes := collectFixes(s.Fix)
		filtered := fix.NonOverlapping(fixes)
		merged, ok := fix.MergeForDiagnostic(c.index.Text(), filtered)
		if !ok {
			continue
		}
		rep.Suggestions = append(rep.Suggestions, Suggestion{Desc: desc, Fix: merged})
	}

	c.reports = append(c.reports, rep)
}

// collectFixes runs a fix callback, swallowing any panic.
func collectFixes(cb func(fix.Fixer) []fix.Fix) (fixes []fix.Fix) {
	if cb == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			fixes = nil
		}
	}()
	return cb(fix.Fixer{})
}

func (c *Context) resolveLoc(d Descriptor) Loc {
	switch {
	case d.Loc != nil:
		return *d.Loc
	case d.Node != nil:
		loc := Loc{
			Line:   d.Node.Loc.Start.Line,
			Column: d.Node.Loc.Start.Col,
		}
		if d.Node.Loc.End.Line > 0 {
			loc.EndLine = d.Node.Loc.End.Line
			loc.EndColumn = d.Node.Loc.End.Col
		}
		return loc
	default:
		panic(fmt.Sprintf("rule %s: report without node or loc", c.meta.ID))
	}
}

func (c *Context) resolveMessage(id, literal string, data map[string]string) string {
	var msg string
	switch {
	case id != "":
		template, ok := c.meta.Messages[id]
		if !ok {
			panic(fmt.Sprintf("rule %s: unknown message id %q", c.meta.ID, id))
		}
		msg = template
	case literal != "":
		msg = literal
	default:
		panic(fmt.Sprintf("rule %s: report without message or message id", c.meta.ID))
	}
	return interpolate(msg, data)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// interpolate substitutes {{ name }} placeholders from data. Unresolved
// placeholders stay verbatim rather than failing.
func interpolate(template string, data map[string]string) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(m, "{{"), "}}"))
		if v, ok := data[key]; ok {
			return v
		}
		return m
	})
}

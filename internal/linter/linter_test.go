package linter

import (
	"strings"
	"testing"

	"edgelint/internal/exprcheck"
	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

// emptyExprRule mirrors the shape of a real check: report blank mustaches.
type emptyExprRule struct{}

func (emptyExprRule) Meta() rule.Meta {
	return rule.Meta{
		ID:       "test-empty",
		Messages: map[string]string{"empty": "unexpected empty expression"},
	}
}

func (emptyExprRule) Create(ctx *rule.Context) rule.Visitor {
	check := func(tok *token.Token) {
		if exprcheck.IsBlank(tok.Value) {
			ctx.Report(rule.Descriptor{Node: tok, MessageID: "empty"})
		}
	}
	return rule.Visitor{Mustache: check, SafeMustache: check}
}

// spacingRule proposes a whitespace fix for unpadded mustaches.
type spacingRule struct{}

func (spacingRule) Meta() rule.Meta {
	return rule.Meta{
		ID:       "test-spacing",
		Messages: map[string]string{"pad": "expected padding"},
		Fixable:  rule.FixWhitespace,
	}
}

func (spacingRule) Create(ctx *rule.Context) rule.Visitor {
	return rule.Visitor{
		Mustache: func(tok *token.Token) {
			want := " " + strings.TrimSpace(tok.Value) + " "
			if tok.Value == want || exprcheck.IsBlank(tok.Value) {
				return
			}
			idx := ctx.Index()
			start := idx.OffsetAt(tok.Loc.Start.Line, tok.Loc.Start.Col)
			end := idx.OffsetAt(tok.Loc.End.Line, tok.Loc.End.Col)
			ctx.Report(rule.Descriptor{
				Node:      tok,
				MessageID: "pad",
				Fix: func(fx fix.Fixer) []fix.Fix {
					return []fix.Fix{fx.Replace(start, end, want)}
				},
			})
		},
	}
}

type panicRule struct{}

func (panicRule) Meta() rule.Meta {
	return rule.Meta{ID: "test-panic", Messages: map[string]string{}}
}

func (panicRule) Create(ctx *rule.Context) rule.Visitor {
	return rule.Visitor{
		Mustache: func(*token.Token) { panic("boom") },
	}
}

func testRegistry(t *testing.T) *rule.Registry {
	t.Helper()
	return rule.NewRegistry().MustRegister(emptyExprRule{}, spacingRule{}, panicRule{})
}

func errorOn(ids ...string) Config {
	cfg := Config{Rules: make(map[string]RuleConfig)}
	for _, id := range ids {
		cfg.Rules[id] = RuleConfig{Severity: Error}
	}
	return cfg
}

func TestVerifyEmptyExpressionScenario(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-empty"))

	diags := l.Verify("{{ }}", "test.edge")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	d := diags[0]
	if d.RuleID != "test-empty" || d.Severity != Error {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Line != 1 {
		t.Fatalf("line = %d, want 1", d.Line)
	}

	if diags := l.Verify("{{ 1 }}", "test.edge"); len(diags) != 0 {
		t.Fatalf("valid expression produced diagnostics: %+v", diags)
	}
}

func TestVerifyOffDisablesRule(t *testing.T) {
	cfg := Config{Rules: map[string]RuleConfig{"test-empty": {Severity: Off}}}
	l := New(testRegistry(t), cfg)
	if diags := l.Verify("{{ }}", "test.edge"); len(diags) != 0 {
		t.Fatalf("off rule still reported: %+v", diags)
	}
}

func TestVerifyUnknownRuleSilentlySkipped(t *testing.T) {
	l := New(testRegistry(t), errorOn("no-such-rule"))
	if diags := l.Verify("{{ }}", "test.edge"); len(diags) != 0 {
		t.Fatalf("unknown rule produced diagnostics: %+v", diags)
	}
}

func TestVerifySyntaxErrorShortCircuits(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-empty", "test-spacing"))

	diags := l.Verify("{{ user.name", "test.edge")
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	d := diags[0]
	if d.RuleID != SyntaxErrorRuleID || d.Severity != Error {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Line != 1 {
		t.Fatalf("line = %d, want 1", d.Line)
	}
}

func TestVerifyRulePanicIsolated(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-panic", "test-empty"))

	diags := l.Verify("{{ }}", "test.edge")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %+v", len(diags), diags)
	}
	var sawSynthetic, sawHealthy bool
	for _, d := range diags {
		switch d.RuleID {
		case "test-panic":
			sawSynthetic = true
			if !strings.Contains(d.Message, "boom") {
				t.Fatalf("synthetic message = %q", d.Message)
			}
		case "test-empty":
			sawHealthy = true
		}
	}
	if !sawSynthetic || !sawHealthy {
		t.Fatalf("diagnostics = %+v", diags)
	}
}

func TestVerifySortInvariant(t *testing.T) {
	src := "{{ }} {{x}}\n{{ }}\n{{y}}"
	l := New(testRegistry(t), errorOn("test-empty", "test-spacing"))

	diags := l.Verify(src, "test.edge")
	if len(diags) < 3 {
		t.Fatalf("expected several diagnostics, got %+v", diags)
	}
	for i := 1; i < len(diags); i++ {
		a, b := diags[i-1], diags[i]
		if a.Line > b.Line || (a.Line == b.Line && a.Column > b.Column) {
			t.Fatalf("sort invariant violated at %d: %+v", i, diags)
		}
	}
}

func TestVerifyAndFixConverges(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-spacing"))

	res := l.VerifyAndFix("{{name}} and {{ other }}", "test.edge")
	if !res.Fixed {
		t.Fatal("expected fixing to occur")
	}
	if res.Output != "{{ name }} and {{ other }}" {
		t.Fatalf("output = %q", res.Output)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("residual diagnostics: %+v", res.Diagnostics)
	}
	if res.Source != "{{name}} and {{ other }}" {
		t.Fatalf("source = %q", res.Source)
	}
}

func TestVerifyAndFixIdempotent(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-spacing", "test-empty"))

	first := l.VerifyAndFix("{{name}}\n{{it}}", "test.edge")
	fixed := first.Output
	if fixed == "" {
		t.Fatal("expected first pass to change the source")
	}

	second := l.VerifyAndFix(fixed, "test.edge")
	if second.Output != "" {
		t.Fatalf("second pass changed already-fixed source: %q", second.Output)
	}
	if second.Fixed {
		t.Fatal("second pass reported fixing")
	}
}

func TestVerifyAndFixCounts(t *testing.T) {
	reg := testRegistry(t)
	cfg := Config{Rules: map[string]RuleConfig{
		"test-empty":   {Severity: Error},
		"test-spacing": {Severity: Warn},
	}}
	l := New(reg, cfg)

	// verify-only counts: run on source whose spacing fix cannot apply
	// because the mustache is empty (nothing for spacing to do).
	res := l.VerifyAndFix("{{ }}", "test.edge")
	if res.ErrorCount != 1 || res.WarningCount != 0 {
		t.Fatalf("counts = %+v", res)
	}
	if res.Output != "" || res.Fixed {
		t.Fatalf("no fix should have happened: %+v", res)
	}
	if res.HasErrors() != true {
		t.Fatal("HasErrors should be true")
	}
}

func TestVerifyOverridesMerge(t *testing.T) {
	l := New(testRegistry(t), errorOn("test-empty"))

	// per-call override turns the rule off
	off := Config{Rules: map[string]RuleConfig{"test-empty": {Severity: Off}}}
	if diags := l.Verify("{{ }}", "test.edge", off); len(diags) != 0 {
		t.Fatalf("override did not win: %+v", diags)
	}
}

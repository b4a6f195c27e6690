// Package linter orchestrates one lint pass: it merges configuration,
// drives tokenization, dispatches every active rule over the token tree in
// a single traversal, and collects sorted diagnostics. VerifyAndFix adds
// the bounded fix-apply-reverify loop on top.
package linter

import (
	"errors"
	"fmt"
	"sort"

	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/source"
	"edgelint/internal/tokenizer"
)

// SyntaxErrorRuleID is the fixed rule id of the diagnostic synthesized when
// tokenization fails.
const SyntaxErrorRuleID = "syntax-error"

// maxFixRounds bounds the fix-apply-reverify loop. The cap is a circuit
// breaker guaranteeing termination when two rules' fixes keep reintroducing
// each other's trigger condition; built-in rules converge far sooner.
const maxFixRounds = 10

// Linter owns a rule registry and a base configuration. Each Verify call
// builds and discards its own index and contexts, so one Linter may serve
// many files, including concurrently.
type Linter struct {
	registry *rule.Registry
	base     Config
}

// New creates a Linter over a registry, layering base on an empty config.
func New(registry *rule.Registry, base Config) *Linter {
	return &Linter{registry: registry, base: base}
}

// Registry exposes the linter's rule registry.
func (l *Linter) Registry() *rule.Registry { return l.registry }

// Config returns the merged configuration for a call with the given
// override layers.
func (l *Linter) Config(overrides ...Config) Config {
	cfg := l.base
	for _, o := range overrides {
		cfg = Merge(cfg, o)
	}
	return cfg
}

// Verify lints one source snapshot and returns its diagnostics, sorted by
// (line, column). Tokenization failure short-circuits into exactly one
// syntax-error diagnostic; no rule runs against an unparseable file.
// Unknown rule ids in config are silently skipped, supporting partial rule
// sets.
func (l *Linter) Verify(src, filename string, overrides ...Config) []Diagnostic {
	cfg := l.Config(overrides...)

	tags := tokenizer.DefaultTags()
	for name, def := range cfg.Parser.Tags {
		tags[name] = def
	}

	tree, err := tokenizer.Tokenize(src, tags, filename)
	if err != nil {
		return []Diagnostic{syntaxErrorDiagnostic(err)}
	}
	idx := source.NewIndex(src, tree)

	type run struct {
		id       string
		severity Severity
		ctx      *rule.Context
		failure  any
	}

	var runs []*run
	var visitors []rule.Visitor
	for _, id := range sortedRuleIDs(cfg.Rules) {
		rc := cfg.Rules[id]
		if rc.Severity == Off {
			continue
		}
		rl, ok := l.registry.Get(id)
		if !ok {
			continue
		}

		r := &run{
			id:       id,
			severity: rc.Severity,
			ctx:      rule.NewContext(rl.Meta(), idx, rc.Options, cfg.Settings),
		}
		runs = append(runs, r)

		visitor, createErr := createVisitor(rl, r.ctx)
		if createErr != nil {
			r.failure = createErr
			continue
		}
		visitors = append(visitors, rule.Protect(visitor, func(recovered any) {
			r.failure = recovered
		}))
	}

	rule.Walk(tree, visitors)

	var diags []Diagnostic
	for _, r := range runs {
		for _, rep := range r.ctx.Reports() {
			diags = append(diags, Diagnostic{
				RuleID:      r.id,
				Severity:    r.severity,
				Message:     rep.Message,
				Line:        rep.Loc.Line,
				Column:      rep.Loc.Column,
				EndLine:     rep.Loc.EndLine,
				EndColumn:   rep.Loc.EndColumn,
				Fix:         rep.Fix,
				Suggestions: rep.Suggestions,
			})
		}
		if r.failure != nil {
			diags = append(diags, Diagnostic{
				RuleID:   r.id,
				Severity: Error,
				Message:  fmt.Sprintf("rule %s failed: %v", r.id, r.failure),
				Line:     1,
			})
		}
	}

	sortDiagnostics(diags)
	return diags
}

// createVisitor builds a rule's visitor, converting a panicking factory
// into a failure instead of aborting the pass.
func createVisitor(rl rule.Rule, ctx *rule.Context) (v rule.Visitor, err any) {
	defer func() {
		if r := recover(); r != nil {
			err = r
		}
	}()
	return rl.Create(ctx), nil
}

func syntaxErrorDiagnostic(err error) Diagnostic {
	d := Diagnostic{
		RuleID:   SyntaxErrorRuleID,
		Severity: Error,
		Message:  err.Error(),
		Line:     1,
	}
	var serr *tokenizer.SyntaxError
	if errors.As(err, &serr) {
		d.Message = serr.Message
		if serr.Line > 0 {
			d.Line = serr.Line
			d.Column = serr.Col
		}
	}
	return d
}

// Result packages one VerifyAndFix call. Output is set only when fixing
// changed the source.
type Result struct {
	Filename            string
	Diagnostics         []Diagnostic
	ErrorCount          int
	WarningCount        int
	FixableErrorCount   int
	FixableWarningCount int
	Source              string
	Output              string
	Fixed               bool
}

// HasErrors reports whether any error-severity diagnostic remains.
func (r *Result) HasErrors() bool { return r.ErrorCount > 0 }

// VerifyAndFix runs the iterative fix loop: verify, apply the
// non-overlapping subset of proposed fixes in one shot, and re-verify, up
// to maxFixRounds times. It converges to a fixed point — calling it again
// on already-fixed source performs exactly one verify and changes nothing.
// The returned diagnostics describe the final snapshot, including fixable
// ones left over from overlap rejection.
func (l *Linter) VerifyAndFix(src, filename string, overrides ...Config) Result {
	current := src
	fixedAny := false
	var diags []Diagnostic

	for round := 0; ; round++ {
		diags = l.Verify(current, filename, overrides...)
		if round >= maxFixRounds {
			break
		}
		var fixes []fix.Fix
		for _, d := range diags {
			if d.Fix != nil {
				fixes = append(fixes, *d.Fix)
			}
		}
		if len(fixes) == 0 {
			break
		}
		current = fix.ApplyAll(current, fix.NonOverlapping(fixes))
		fixedAny = true
	}

	res := Result{
		Filename:    filename,
		Diagnostics: diags,
		Source:      src,
		Fixed:       fixedAny,
	}
	if current != src {
		res.Output = current
	}
	for _, d := range diags {
		switch d.Severity {
		case Error:
			res.ErrorCount++
			if d.Fix != nil {
				res.FixableErrorCount++
			}
		case Warn:
			res.WarningCount++
			if d.Fix != nil {
				res.FixableWarningCount++
			}
		}
	}
	return res
}

func sortedRuleIDs(rules map[string]RuleConfig) []string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	// deterministic dispatch order
	sort.Strings(ids)
	return ids
}

// Package rules ships the built-in diagnostic checks. Each rule is a plugin
// against the engine's factory-returns-visitor contract; none of them hold
// state beyond one file's pass.
package rules

import (
	"edgelint/internal/exprcheck"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type noEmptyExpression struct{}

// NoEmptyExpression reports mustaches whose expression is empty or
// whitespace-only.
func NoEmptyExpression() rule.Rule { return noEmptyExpression{} }

func (noEmptyExpression) Meta() rule.Meta {
	return rule.Meta{
		ID: "no-empty-expression",
		Docs: rule.Docs{
			Description: "disallow empty expressions inside mustache delimiters",
			Category:    "possible-errors",
			Recommended: true,
		},
		Messages: map[string]string{
			"empty": "unexpected empty expression",
		},
	}
}

func (noEmptyExpression) Create(ctx *rule.Context) rule.Visitor {
	check := func(tok *token.Token) {
		if exprcheck.IsBlank(tok.Value) {
			ctx.Report(rule.Descriptor{Node: tok, MessageID: "empty"})
		}
	}
	return rule.Visitor{
		Mustache:            check,
		SafeMustache:        check,
		EscapedMustache:     check,
		EscapedSafeMustache: check,
	}
}

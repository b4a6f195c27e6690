package rules

import (
	"edgelint/internal/exprcheck"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type noComplexExpression struct{}

// NoComplexExpression reports mustaches whose expression carries logic
// that belongs in the controller: negation and method calls. Both checks
// are textual heuristics; see package exprcheck for the accepted blind
// spots.
func NoComplexExpression() rule.Rule { return noComplexExpression{} }

func (noComplexExpression) Meta() rule.Meta {
	return rule.Meta{
		ID: "no-complex-expression",
		Docs: rule.Docs{
			Description: "disallow negation and method calls inside mustache expressions",
			Category:    "best-practices",
			Recommended: true,
		},
		Messages: map[string]string{
			"negation":   "avoid negation in a template expression; compute the value before rendering",
			"methodCall": "avoid method calls in a template expression; compute the value before rendering",
		},
	}
}

func (noComplexExpression) Create(ctx *rule.Context) rule.Visitor {
	check := func(tok *token.Token) {
		if exprcheck.IsBlank(tok.Value) {
			return
		}
		if exprcheck.HasNegation(tok.Value) {
			ctx.Report(rule.Descriptor{Node: tok, MessageID: "negation"})
		}
		if exprcheck.HasMethodCall(tok.Value) {
			ctx.Report(rule.Descriptor{Node: tok, MessageID: "methodCall"})
		}
	}
	return rule.Visitor{
		Mustache:            check,
		SafeMustache:        check,
		EscapedMustache:     check,
		EscapedSafeMustache: check,
	}
}

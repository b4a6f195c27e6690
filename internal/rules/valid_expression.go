package rules

import (
	"edgelint/internal/exprcheck"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type validExpression struct{}

// ValidExpression runs the heuristic balance scan over every mustache body
// and tag argument. It is not a host-language parse; see package exprcheck
// for the accepted blind spots.
func ValidExpression() rule.Rule { return validExpression{} }

func (validExpression) Meta() rule.Meta {
	return rule.Meta{
		ID: "valid-expression",
		Docs: rule.Docs{
			Description: "report expressions with unbalanced brackets or unterminated strings",
			Category:    "possible-errors",
			Recommended: true,
		},
		Messages: map[string]string{
			"invalid": "invalid expression: {{ reason }}",
		},
	}
}

func (validExpression) Create(ctx *rule.Context) rule.Visitor {
	report := func(tok *token.Token, expr string) {
		if exprcheck.IsBlank(expr) {
			return
		}
		if err := exprcheck.Check(expr); err != nil {
			ctx.Report(rule.Descriptor{
				Node:      tok,
				MessageID: "invalid",
				Data:      map[string]string{"reason": err.Error()},
			})
		}
	}
	checkMustache := func(tok *token.Token) { report(tok, tok.Value) }
	checkTag := func(tok *token.Token) { report(tok, tok.JsArg) }
	return rule.Visitor{
		Mustache:            checkMustache,
		SafeMustache:        checkMustache,
		EscapedMustache:     checkMustache,
		EscapedSafeMustache: checkMustache,
		Tag:                 checkTag,
	}
}

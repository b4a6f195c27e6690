package rules

import (
	"strings"

	"edgelint/internal/exprcheck"
	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type mustacheSpacing struct{}

// MustacheSpacing enforces a single space of padding between mustache
// delimiters and the expression, and can rewrite the padding itself.
func MustacheSpacing() rule.Rule { return mustacheSpacing{} }

func (mustacheSpacing) Meta() rule.Meta {
	return rule.Meta{
		ID: "mustache-spacing",
		Docs: rule.Docs{
			Description: "require a single space inside mustache delimiters",
			Category:    "style",
			Recommended: true,
		},
		Messages: map[string]string{
			"spacing": "expected a single space inside mustache delimiters",
		},
		Fixable: rule.FixWhitespace,
	}
}

func (mustacheSpacing) Create(ctx *rule.Context) rule.Visitor {
	check := func(tok *token.Token) {
		if exprcheck.IsBlank(tok.Value) || strings.Contains(tok.Value, "\n") {
			return
		}
		want := " " + strings.TrimSpace(tok.Value) + " "
		if tok.Value == want {
			return
		}
		idx := ctx.Index()
		innerStart := idx.OffsetAt(tok.Loc.Start.Line, tok.Loc.Start.Col)
		innerEnd := idx.OffsetAt(tok.Loc.End.Line, tok.Loc.End.Col)
		ctx.Report(rule.Descriptor{
			Node:      tok,
			MessageID: "spacing",
			Fix: func(fx fix.Fixer) []fix.Fix {
				return []fix.Fix{fx.Replace(innerStart, innerEnd, want)}
			},
		})
	}
	return rule.Visitor{
		Mustache:            check,
		SafeMustache:        check,
		EscapedMustache:     check,
		EscapedSafeMustache: check,
	}
}

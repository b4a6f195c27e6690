package rules

import (
	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type noSelfClosedInclude struct{}

// NoSelfClosedInclude rewrites @!include to @include. Include tags have no
// body, so the self-closed form is a deprecated spelling with no effect.
func NoSelfClosedInclude() rule.Rule { return noSelfClosedInclude{} }

func (noSelfClosedInclude) Meta() rule.Meta {
	return rule.Meta{
		ID: "no-self-closed-include",
		Docs: rule.Docs{
			Description: "disallow the self-closed form of @include",
			Category:    "deprecations",
		},
		Messages: map[string]string{
			"selfClosed": "@include has no body; drop the self-closing '!'",
		},
		Fixable: rule.FixCode,
	}
}

func (noSelfClosedInclude) Create(ctx *rule.Context) rule.Visitor {
	return rule.Visitor{
		Tag: func(tok *token.Token) {
			if tok.Name != "include" && tok.Name != "includeIf" {
				return
			}
			if !tok.SelfClosed {
				return
			}
			desc := rule.Descriptor{Node: tok, MessageID: "selfClosed"}
			if start, _, ok := ctx.Index().Range(tok); ok {
				// range starts at '@'; the '!' is the following byte
				desc.Fix = func(fx fix.Fixer) []fix.Fix {
					return []fix.Fix{fx.Remove(start+1, start+2)}
				}
			}
			ctx.Report(desc)
		},
	}
}

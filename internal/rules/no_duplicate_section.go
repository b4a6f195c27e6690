package rules

import (
	"regexp"

	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type noDuplicateSection struct{}

// NoDuplicateSection reports a second @section marker with the same name
// among one parent's direct children. Later markers silently override
// earlier ones at render time, which is almost always an authoring mistake.
func NoDuplicateSection() rule.Rule { return noDuplicateSection{} }

func (noDuplicateSection) Meta() rule.Meta {
	return rule.Meta{
		ID: "no-duplicate-section",
		Docs: rule.Docs{
			Description: "disallow duplicate @section names within one parent",
			Category:    "possible-errors",
			Recommended: true,
		},
		Messages: map[string]string{
			"duplicate": "section '{{ name }}' is already defined",
			"remove":    "remove the duplicate section",
		},
		HasSuggestions: true,
	}
}

var sectionNameRe = regexp.MustCompile(`^\s*(?:'([^']*)'|"([^"]*)")`)

func sectionName(arg string) (string, bool) {
	m := sectionNameRe.FindStringSubmatch(arg)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

func (noDuplicateSection) Create(ctx *rule.Context) rule.Visitor {
	// duplicates are a sibling property, so each scope is scanned on exit
	// once its children are complete
	scan := func(children []*token.Token) {
		seen := make(map[string]bool)
		for _, child := range children {
			if child.Kind != token.Tag || child.Name != "section" {
				continue
			}
			name, ok := sectionName(child.JsArg)
			if !ok {
				continue
			}
			if !seen[name] {
				seen[name] = true
				continue
			}
			desc := rule.Descriptor{
				Node:      child,
				MessageID: "duplicate",
				Data:      map[string]string{"name": name},
			}
			if start, end, ok := ctx.Index().Range(child); ok {
				desc.Suggest = []rule.SuggestDescriptor{{
					MessageID: "remove",
					Fix: func(fx fix.Fixer) []fix.Fix {
						return []fix.Fix{fx.Remove(start, end)}
					},
				}}
			}
			ctx.Report(desc)
		}
	}
	return rule.Visitor{
		TagExit:  func(tok *token.Token) { scan(tok.Children) },
		TreeExit: func(tree []*token.Token) { scan(tree) },
	}
}

package rules

import (
	"encoding/json"
	"regexp"
	"strings"

	"edgelint/internal/fix"
	"edgelint/internal/rule"
	"edgelint/internal/token"
)

type noUnusedSet struct{}

// NoUnusedSet reports @set / @let / @assign declarations whose variable is
// never referenced later in the template. Whether a name is "used later" is
// a forward-reference question, so the whole check runs as a second pass
// over the flattened token list once traversal completes.
func NoUnusedSet() rule.Rule { return noUnusedSet{} }

type noUnusedSetOptions struct {
	// IgnorePrefix exempts names with this prefix, "_" by convention.
	IgnorePrefix string `json:"ignorePrefix"`
}

func (noUnusedSet) Meta() rule.Meta {
	return rule.Meta{
		ID: "no-unused-set",
		Docs: rule.Docs{
			Description: "disallow template variables that are never used",
			Category:    "best-practices",
		},
		Messages: map[string]string{
			"unused": "'{{ name }}' is assigned but never used",
			"remove": "remove the unused assignment",
		},
		HasSuggestions: true,
		Schema:         json.RawMessage(`{"type":"object","properties":{"ignorePrefix":{"type":"string"}}}`),
	}
}

var setNameRe = regexp.MustCompile(`^\s*(?:'([A-Za-z_$][A-Za-z0-9_$]*)'|"([A-Za-z_$][A-Za-z0-9_$]*)"|([A-Za-z_$][A-Za-z0-9_$]*)\s*=)`)

func assignedName(arg string) (string, bool) {
	m := setNameRe.FindStringSubmatch(arg)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", false
}

func isAssignTag(tok *token.Token) bool {
	if tok.Kind != token.Tag {
		return false
	}
	switch tok.Name {
	case "set", "let", "assign":
		return true
	default:
		return false
	}
}

func (noUnusedSet) Create(ctx *rule.Context) rule.Visitor {
	var opts noUnusedSetOptions
	if err := ctx.DecodeOptions(&opts); err != nil {
		opts = noUnusedSetOptions{}
	}

	return rule.Visitor{
		TreeExit: func(tree []*token.Token) {
			flat := token.FlattenTree(tree)
			for i, tok := range flat {
				if !isAssignTag(tok) {
					continue
				}
				name, ok := assignedName(tok.JsArg)
				if !ok {
					continue
				}
				if opts.IgnorePrefix != "" && strings.HasPrefix(name, opts.IgnorePrefix) {
					continue
				}
				if usedAfter(flat[i+1:], name) {
					continue
				}
				desc := rule.Descriptor{
					Node:      tok,
					MessageID: "unused",
					Data:      map[string]string{"name": name},
				}
				if start, end, ok := ctx.Index().Range(tok); ok {
					desc.Suggest = []rule.SuggestDescriptor{{
						MessageID: "remove",
						Fix: func(fx fix.Fixer) []fix.Fix {
							return []fix.Fix{fx.Remove(start, end)}
						},
					}}
				}
				ctx.Report(desc)
			}
		},
	}
}

func usedAfter(rest []*token.Token, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for _, tok := range rest {
		switch {
		case tok.Kind.IsMustache():
			if re.MatchString(tok.Value) {
				return true
			}
		case tok.Kind.IsTag():
			// a later assignment to the same name is not a use
			if isAssignTag(tok) {
				if assigned, ok := assignedName(tok.JsArg); ok && assigned == name {
					continue
				}
			}
			if re.MatchString(tok.JsArg) {
				return true
			}
		}
	}
	return false
}

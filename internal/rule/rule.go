// Package rule defines the plugin contract of the lint engine: a rule is a
// named capability bundle that, given a per-run reporting context, returns a
// visitor of token-kind callbacks. The package also owns the single
// depth-first dispatch over the token tree and the registry rules are looked
// up in.
package rule

import "encoding/json"

// Fixability classifies what kind of source rewriting a rule may propose.
type Fixability uint8

const (
	// FixNone marks a rule that never proposes fixes.
	FixNone Fixability = iota
	// FixWhitespace marks a rule whose fixes only touch whitespace.
	FixWhitespace
	// FixCode marks a rule whose fixes rewrite code.
	FixCode
)

func (f Fixability) String() string {
	switch f {
	case FixWhitespace:
		return "whitespace"
	case FixCode:
		return "code"
	}
	return "none"
}

// Docs is human-facing rule metadata surfaced by host tooling.
type Docs struct {
	Description string
	Category    string
	Recommended bool
}

// Meta is the static description of a rule. Messages maps message ids to
// templates with {{ placeholder }} substitution. Schema describes accepted
// options for host-side validation; the engine itself does not enforce it.
type Meta struct {
	ID             string
	Docs           Docs
	Messages       map[string]string
	Fixable        Fixability
	HasSuggestions bool
	Schema         json.RawMessage
}

// Rule is the contract every diagnostic check implements. Rules are
// stateless across runs: any tracking state must live inside the closure
// returned by Create, scoped to one file's one pass.
type Rule interface {
	Meta() Meta
	Create(ctx *Context) Visitor
}

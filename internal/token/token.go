package token

// Position is a point in the template source. Lines are 1-based; columns are
// 0-based, matching the convention diagnostics are reported in.
type Position struct {
	Line int
	Col  int
}

// Loc is a start/end pair of positions. Raw and NewLine tokens only carry
// Start.Line; the remaining fields stay zero.
type Loc struct {
	Start Position
	End   Position
}

// Token is one lexical unit of a template. Which fields are meaningful
// depends on Kind:
//
//   - Tag, EscapedTag: Name, JsArg, SelfClosed, and Children (nil when
//     self-closed or non-block). Loc spans the tag's argument expression.
//   - mustache variants: Value holds the raw inner expression; Loc spans the
//     expression between the delimiters.
//   - Raw: Value holds the literal text, Loc.Start.Line the line it sits on.
//   - Comment: Value holds the comment text.
//   - NewLine: Loc.Start.Line identifies the terminated line.
//
// Tokens are always handled by pointer; pointer identity is what the source
// index keys its parent map on.
type Token struct {
	Kind Kind
	Loc  Loc

	// Tag fields.
	Name       string
	JsArg      string
	SelfClosed bool
	Children   []*Token

	// Mustache, Raw and Comment payload.
	Value string
}

// IsBlock reports whether the token is a tag that owns children.
func (t *Token) IsBlock() bool {
	return t.Kind.IsTag() && !t.SelfClosed && t.Children != nil
}

// Flatten appends the token and all its descendants to out in document
// order and returns the extended slice.
func (t *Token) Flatten(out []*Token) []*Token {
	out = append(out, t)
	for _, child := range t.Children {
		out = child.Flatten(out)
	}
	return out
}

// FlattenTree returns every token of the tree in document order.
func FlattenTree(tree []*Token) []*Token {
	out := make([]*Token, 0, len(tree))
	for _, t := range tree {
		out = t.Flatten(out)
	}
	return out
}

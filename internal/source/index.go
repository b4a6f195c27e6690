// Package source resolves template tokens to absolute byte ranges and
// converts between line/column positions and byte offsets. One Index is
// built per lint pass from the source text and its token tree, and is
// discarded with the pass; it never mutates the tree it wraps.
package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"edgelint/internal/token"
)

// Index wraps one immutable source snapshot together with its token tree.
type Index struct {
	text       string
	lineStarts []uint32
	parents    map[*token.Token]*token.Token
}

// NewIndex builds the line table and parent map for text and tree.
func NewIndex(text string, tree []*token.Token) *Index {
	idx := &Index{
		text:       text,
		lineStarts: buildLineStarts(text),
		parents:    make(map[*token.Token]*token.Token),
	}
	for _, t := range tree {
		idx.link(t, nil)
	}
	return idx
}

func (idx *Index) link(t *token.Token, parent *token.Token) {
	if parent != nil {
		idx.parents[t] = parent
	}
	for _, child := range t.Children {
		idx.link(child, t)
	}
}

func buildLineStarts(text string) []uint32 {
	starts := []uint32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			starts = append(starts, off)
		}
	}
	return starts
}

// Text returns the wrapped source snapshot.
func (idx *Index) Text() string { return idx.text }

// Lines returns the number of lines in the snapshot.
func (idx *Index) Lines() int { return len(idx.lineStarts) }

// OffsetAt converts a 1-based line and 0-based column to a byte offset.
// Positions past the end of the text clamp to len(text).
func (idx *Index) OffsetAt(line, col int) uint32 {
	textLen := mustUint32(len(idx.text))
	if line < 1 {
		return 0
	}
	if line > len(idx.lineStarts) {
		return textLen
	}
	off := idx.lineStarts[line-1] + mustUint32(col)
	if off > textLen {
		return textLen
	}
	return off
}

// PosAt converts a byte offset back to a 1-based line and 0-based column.
// Offsets past the end of the text clamp to the final position.
func (idx *Index) PosAt(off uint32) (line, col int) {
	textLen := mustUint32(len(idx.text))
	if off > textLen {
		off = textLen
	}
	// binary search: greatest lineStarts[i] <= off
	lo, hi := 0, len(idx.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) >> 1
		if idx.lineStarts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, int(off - idx.lineStarts[lo])
}

// Parent returns the enclosing block tag of t, or nil at the tree root.
func (idx *Index) Parent(t *token.Token) *token.Token {
	return idx.parents[t]
}

// Ancestors returns the chain of enclosing tags of t, root-first.
func (idx *Index) Ancestors(t *token.Token) []*token.Token {
	var chain []*token.Token
	for p := idx.parents[t]; p != nil; p = idx.parents[p] {
		chain = append([]*token.Token{p}, chain...)
	}
	return chain
}

// Range resolves the absolute byte range [start, end) spanning the token's
// full textual representation including its delimiters. Token locations
// cover only the inner expression, so the delimiter widths are compensated
// here: two braces for a mustache, three for a safe mustache, one more for
// the escaping '@', and sigil + name + '(' for a tag. Raw tokens are located
// by scanning their stated line for the literal value; a NewLine token maps
// to the line's terminating byte. ok is false when the token cannot be
// resolved to a range.
func (idx *Index) Range(t *token.Token) (start, end uint32, ok bool) {
	switch t.Kind {
	case token.Mustache, token.SafeMustache, token.EscapedMustache, token.EscapedSafeMustache:
		open := uint32(2)
		if t.Kind.IsSafe() {
			open = 3
		}
		closing := open
		if t.Kind.IsEscaped() {
			open++ // leading '@'
		}
		s := idx.OffsetAt(t.Loc.Start.Line, t.Loc.Start.Col)
		if s < open {
			return 0, 0, false
		}
		return s - open, idx.OffsetAt(t.Loc.End.Line, t.Loc.End.Col) + closing, true

	case token.Comment:
		const delim = uint32(len("{{--"))
		s := idx.OffsetAt(t.Loc.Start.Line, t.Loc.Start.Col)
		if s < delim {
			return 0, 0, false
		}
		return s - delim, idx.OffsetAt(t.Loc.End.Line, t.Loc.End.Col) + delim, true

	case token.Tag, token.EscapedTag:
		sigil := uint32(1)
		if t.SelfClosed || t.Kind == token.EscapedTag {
			sigil = 2
		}
		prefix := sigil + mustUint32(len(t.Name))
		if t.Loc.Start != t.Loc.End {
			prefix++ // opening paren; Loc.End already sits past ')'
		}
		s := idx.OffsetAt(t.Loc.Start.Line, t.Loc.Start.Col)
		if s < prefix {
			return 0, 0, false
		}
		return s - prefix, idx.OffsetAt(t.Loc.End.Line, t.Loc.End.Col), true

	case token.Raw:
		lineStart, lineEnd, ok := idx.lineBounds(t.Loc.Start.Line)
		if !ok {
			return 0, 0, false
		}
		rel := strings.Index(idx.text[lineStart:lineEnd], t.Value)
		if rel < 0 {
			return 0, 0, false
		}
		s := lineStart + mustUint32(rel)
		return s, s + mustUint32(len(t.Value)), true

	case token.NewLine:
		_, lineEnd, ok := idx.lineBounds(t.Loc.Start.Line)
		if !ok || int(lineEnd) >= len(idx.text) || idx.text[lineEnd] != '\n' {
			return 0, 0, false
		}
		return lineEnd, lineEnd + 1, true

	default:
		return 0, 0, false
	}
}

// lineBounds returns the [start, end) offsets of a 1-based line, excluding
// its terminating newline.
func (idx *Index) lineBounds(line int) (start, end uint32, ok bool) {
	if line < 1 || line > len(idx.lineStarts) {
		return 0, 0, false
	}
	start = idx.lineStarts[line-1]
	if line < len(idx.lineStarts) {
		return start, idx.lineStarts[line] - 1, true
	}
	return start, mustUint32(len(idx.text)), true
}

func mustUint32(v int) uint32 {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return u
}

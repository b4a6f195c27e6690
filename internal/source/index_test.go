package source

import (
	"testing"

	"edgelint/internal/token"
	"edgelint/internal/tokenizer"
)

func buildIndex(t *testing.T, src string) (*Index, []*token.Token) {
	t.Helper()
	tree, err := tokenizer.Tokenize(src, nil, "test.edge")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	return NewIndex(src, tree), tree
}

func sliceRange(t *testing.T, idx *Index, tok *token.Token) string {
	t.Helper()
	start, end, ok := idx.Range(tok)
	if !ok {
		t.Fatalf("Range failed for %s token", tok.Kind)
	}
	return idx.Text()[start:end]
}

func TestRangeReproducesFullLiteral(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"{{ x }}", "{{ x }}"},
		{"{{{ html }}}", "{{{ html }}}"},
		{"@{{ x }}", "@{{ x }}"},
		{"@{{{ x }}}", "@{{{ x }}}"},
		{"{{-- note --}}", "{{-- note --}}"},
	}
	for _, tc := range cases {
		idx, tree := buildIndex(t, tc.src)
		if got := sliceRange(t, idx, tree[0]); got != tc.want {
			t.Errorf("%q: range slice = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestRangeMidLineMustache(t *testing.T) {
	src := "Hello {{ user.name }} friend"
	idx, tree := buildIndex(t, src)
	// tree: raw, mustache, raw
	if got := sliceRange(t, idx, tree[1]); got != "{{ user.name }}" {
		t.Fatalf("range slice = %q", got)
	}
}

func TestRangeTag(t *testing.T) {
	src := "@if(user)\nhi\n@end"
	idx, tree := buildIndex(t, src)
	if got := sliceRange(t, idx, tree[0]); got != "@if(user)" {
		t.Fatalf("range slice = %q", got)
	}
}

func TestRangeSelfClosedAndEscapedTags(t *testing.T) {
	idx, tree := buildIndex(t, "@!component('x')")
	if got := sliceRange(t, idx, tree[0]); got != "@!component('x')" {
		t.Fatalf("self-closed range slice = %q", got)
	}

	idx, tree = buildIndex(t, "@@if(user)")
	if got := sliceRange(t, idx, tree[0]); got != "@@if(user)" {
		t.Fatalf("escaped range slice = %q", got)
	}
}

func TestRangeParenlessTag(t *testing.T) {
	src := "@if(a)\n@else\n@end"
	idx, tree := buildIndex(t, src)
	elseTok := tree[0].Children[1]
	if elseTok.Kind != token.Tag || elseTok.Name != "else" {
		t.Fatalf("unexpected token %s %q", elseTok.Kind, elseTok.Name)
	}
	if got := sliceRange(t, idx, elseTok); got != "@else" {
		t.Fatalf("range slice = %q", got)
	}
}

func TestRangeRawAndNewLine(t *testing.T) {
	src := "hello\nworld"
	idx, tree := buildIndex(t, src)
	// tree: raw(hello), newline, raw(world)
	if got := sliceRange(t, idx, tree[0]); got != "hello" {
		t.Fatalf("raw range = %q", got)
	}
	start, end, ok := idx.Range(tree[1])
	if !ok || start != 5 || end != 6 {
		t.Fatalf("newline range = [%d,%d) ok=%v, want [5,6) true", start, end, ok)
	}
	if got := sliceRange(t, idx, tree[2]); got != "world" {
		t.Fatalf("raw range = %q", got)
	}
}

func TestOffsetPosRoundTrip(t *testing.T) {
	src := "abc\ndef\n\nghi"
	idx := NewIndex(src, nil)

	for off := uint32(0); off <= uint32(len(src)); off++ {
		line, col := idx.PosAt(off)
		if back := idx.OffsetAt(line, col); back != off {
			t.Fatalf("offset %d -> %d:%d -> %d", off, line, col, back)
		}
	}
}

func TestOffsetClampsPastEnd(t *testing.T) {
	idx := NewIndex("ab", nil)
	if got := idx.OffsetAt(9, 9); got != 2 {
		t.Fatalf("OffsetAt(9,9) = %d, want 2", got)
	}
	if line, col := idx.PosAt(99); line != 1 || col != 2 {
		t.Fatalf("PosAt(99) = %d:%d, want 1:2", line, col)
	}
}

func TestParentAndAncestors(t *testing.T) {
	src := "@if(a)\n@each(item in items)\n{{ item }}\n@end\n@end"
	idx, tree := buildIndex(t, src)

	ifTag := tree[0]
	eachTag := ifTag.Children[1]
	if eachTag.Name != "each" {
		t.Fatalf("expected each tag, got %q", eachTag.Name)
	}
	var mustache *token.Token
	for _, c := range eachTag.Children {
		if c.Kind == token.Mustache {
			mustache = c
		}
	}
	if mustache == nil {
		t.Fatal("mustache not found")
	}

	if idx.Parent(mustache) != eachTag {
		t.Fatal("parent of mustache should be each tag")
	}
	if idx.Parent(eachTag) != ifTag {
		t.Fatal("parent of each should be if tag")
	}
	if idx.Parent(ifTag) != nil {
		t.Fatal("root tag should have no parent")
	}

	anc := idx.Ancestors(mustache)
	if len(anc) != 2 || anc[0] != ifTag || anc[1] != eachTag {
		t.Fatalf("ancestors not root-first: %v", anc)
	}
}

func TestRangeUnresolvableRaw(t *testing.T) {
	idx := NewIndex("abc", nil)
	bogus := &token.Token{Kind: token.Raw, Value: "zzz", Loc: token.Loc{Start: token.Position{Line: 1}}}
	if _, _, ok := idx.Range(bogus); ok {
		t.Fatal("expected range resolution to fail")
	}
}

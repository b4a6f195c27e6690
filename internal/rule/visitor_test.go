package rule

import (
	"reflect"
	"testing"

	"edgelint/internal/token"
)

func sampleTree() []*token.Token {
	inner := &token.Token{Kind: token.Mustache, Value: " x "}
	raw := &token.Token{Kind: token.Raw, Value: "hi"}
	block := &token.Token{Kind: token.Tag, Name: "if", Children: []*token.Token{raw, inner}}
	tail := &token.Token{Kind: token.Comment, Value: " c "}
	return []*token.Token{block, tail}
}

func TestWalkOrder(t *testing.T) {
	var got []string
	v := Visitor{
		TreeEnter: func(tree []*token.Token) { got = append(got, "tree:enter") },
		TreeExit:  func(tree []*token.Token) { got = append(got, "tree:exit") },
		Tag:       func(tok *token.Token) { got = append(got, "tag:"+tok.Name) },
		TagExit:   func(tok *token.Token) { got = append(got, "tag-exit:"+tok.Name) },
		Raw:       func(tok *token.Token) { got = append(got, "raw") },
		Mustache:  func(tok *token.Token) { got = append(got, "mustache") },
		Comment:   func(tok *token.Token) { got = append(got, "comment") },
	}

	Walk(sampleTree(), []Visitor{v})

	want := []string{
		"tree:enter",
		"tag:if", "raw", "mustache", "tag-exit:if",
		"comment",
		"tree:exit",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("traversal order = %v, want %v", got, want)
	}
}

func TestWalkMultipleVisitorsShareOneTraversal(t *testing.T) {
	count := [2]int{}
	visitors := []Visitor{
		{Mustache: func(*token.Token) { count[0]++ }},
		{Mustache: func(*token.Token) { count[1]++ }},
	}
	Walk(sampleTree(), visitors)
	if count[0] != 1 || count[1] != 1 {
		t.Fatalf("mustache callbacks fired %v times, want once each", count)
	}
}

func TestProtectIsolatesPanics(t *testing.T) {
	var recovered any
	calls := 0
	v := Protect(Visitor{
		Raw:      func(*token.Token) { panic("rule bug") },
		Mustache: func(*token.Token) { calls++ },
	}, func(r any) { recovered = r })

	healthy := 0
	other := Visitor{Mustache: func(*token.Token) { healthy++ }}

	Walk(sampleTree(), []Visitor{v, other})

	if recovered != "rule bug" {
		t.Fatalf("recovered = %v", recovered)
	}
	if calls != 0 {
		t.Fatal("failed visitor kept running after panic")
	}
	if healthy != 1 {
		t.Fatalf("other visitor ran %d times, want 1", healthy)
	}
}

package exprcheck

import "testing"

func TestCheckBalanced(t *testing.T) {
	valid := []string{
		"user.name",
		"items.map((i) => i.title)",
		"a['key'] + b[\"other\"]",
		"{ a: 1, b: [2, 3] }",
		"'a string with ) and }'",
		"`template ${value}`",
		"'escaped \\' quote'",
		"",
	}
	for _, expr := range valid {
		if err := Check(expr); err != nil {
			t.Errorf("Check(%q) = %v, want nil", expr, err)
		}
	}
}

func TestCheckUnbalanced(t *testing.T) {
	invalid := []string{
		"user.name(",
		"items]",
		"(a + b]",
		"'unterminated",
		"{ a: 1",
		"a)b",
	}
	for _, expr := range invalid {
		if err := Check(expr); err == nil {
			t.Errorf("Check(%q) = nil, want error", expr)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   \t ") {
		t.Fatal("whitespace should be blank")
	}
	if IsBlank(" 1 ") {
		t.Fatal("content should not be blank")
	}
}

func TestHasNegation(t *testing.T) {
	if !HasNegation("!user.isAdmin") {
		t.Fatal("expected negation match")
	}
	if HasNegation("a != b") {
		t.Fatal("!= must not count as negation")
	}
	// documented blind spot: negation inside a string literal still matches
	if !HasNegation("'hello!?'") {
		t.Fatal("heuristic blind spot changed; rules pin this behavior")
	}
}

func TestHasMethodCall(t *testing.T) {
	if !HasMethodCall("user.getName()") {
		t.Fatal("expected method call match")
	}
	if HasMethodCall("user.name") {
		t.Fatal("property access is not a call")
	}
}

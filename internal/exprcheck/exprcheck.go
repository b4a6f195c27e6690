// Package exprcheck validates embedded template expressions heuristically:
// a single scan over the text tracks bracket depth and string state instead
// of parsing the host expression language. The blind spots are deliberate
// and stable — regex literals are not understood, and pattern helpers such
// as HasNegation misfire on operators inside string literals. Rules depend
// on exactly these boundaries; do not silently upgrade this to a parser.
package exprcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Check scans expr for unbalanced brackets and unterminated strings.
// A nil return means the expression passed the heuristic, not that it is
// valid in the host language.
func Check(expr string) error {
	var stack []byte
	var quote byte

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 {
				return fmt.Errorf("unexpected %q", c)
			}
			open := stack[len(stack)-1]
			if closerFor(open) != c {
				return fmt.Errorf("expected %q, found %q", closerFor(open), c)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if quote != 0 {
		return fmt.Errorf("unterminated string literal")
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %q", stack[len(stack)-1])
	}
	return nil
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// IsBlank reports whether expr contains no meaningful content.
func IsBlank(expr string) bool {
	return strings.TrimSpace(expr) == ""
}

var (
	negationRe   = regexp.MustCompile(`(^|[^!=])!(?:[^=]|$)`)
	methodCallRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*\s*\.\s*[A-Za-z_$][A-Za-z0-9_$]*\s*\(`)
)

// HasNegation reports whether expr appears to use the ! operator. String
// contents are not excluded, so `'hi!'` is a known false positive.
func HasNegation(expr string) bool {
	return negationRe.MatchString(expr)
}

// HasMethodCall reports whether expr appears to invoke a method on a value.
func HasMethodCall(expr string) bool {
	return methodCallRe.MatchString(expr)
}

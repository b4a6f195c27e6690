// Package tokenizer lexes Edge templates into the token tree consumed by the
// lint engine. Tags occupy whole lines and are recognized against a tag
// definition map; mustaches, comments and raw text may mix within a line and
// span several lines. The tokenizer never interprets the embedded expression
// language: tag arguments and mustache bodies are captured verbatim.
package tokenizer

import (
	"fmt"
	"strings"

	"edgelint/internal/token"
)

// SyntaxError reports malformed template syntax with its position.
// Line is 1-based; a zero Line means the position is unknown.
type SyntaxError struct {
	Message  string
	Filename string
	Line     int
	Col      int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

// Tokenize lexes src into a token tree. tags drives tag recognition; nil
// falls back to DefaultTags. On malformed syntax it returns a *SyntaxError.
func Tokenize(src string, tags map[string]TagDef, filename string) ([]*token.Token, error) {
	if tags == nil {
		tags = DefaultTags()
	}
	t := &tokenizer{
		filename: filename,
		tags:     tags,
		lines:    strings.Split(src, "\n"),
	}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.out, nil
}

type tokenizer struct {
	filename string
	tags     map[string]TagDef
	lines    []string

	out   []*token.Token
	stack []*token.Token // open block tags
}

func (t *tokenizer) errorf(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message:  fmt.Sprintf(format, args...),
		Filename: t.filename,
		Line:     line,
		Col:      col,
	}
}

// emit appends tok to the innermost open block tag, or to the root.
func (t *tokenizer) emit(tok *token.Token) {
	if n := len(t.stack); n > 0 {
		parent := t.stack[n-1]
		parent.Children = append(parent.Children, tok)
		return
	}
	t.out = append(t.out, tok)
}

func (t *tokenizer) run() error {
	for i := 0; i < len(t.lines); i++ {
		next, handled, err := t.scanTagLine(i)
		if err != nil {
			return err
		}
		if !handled {
			next, err = t.scanInline(i, 0)
			if err != nil {
				return err
			}
		}
		i = next
		if i < len(t.lines)-1 {
			t.emit(&token.Token{
				Kind: token.NewLine,
				Loc:  token.Loc{Start: token.Position{Line: i + 1}},
			})
		}
	}
	if n := len(t.stack); n > 0 {
		open := t.stack[n-1]
		return t.errorf(open.Loc.Start.Line, 0, "unclosed tag @%s, expected @end", open.Name)
	}
	return nil
}

// scanTagLine handles a line whose first non-whitespace token is a tag sigil.
// It reports handled=false when the line is not a recognized tag, in which
// case the caller lexes it as inline content.
func (t *tokenizer) scanTagLine(i int) (next int, handled bool, err error) {
	line := t.lines[i]
	p := 0
	for p < len(line) && (line[p] == ' ' || line[p] == '\t') {
		p++
	}
	if p >= len(line) || line[p] != '@' {
		return i, false, nil
	}
	sigilLen := 1
	escaped, selfClosed := false, false
	q := p + 1
	if q < len(line) {
		switch line[q] {
		case '@':
			escaped = true
			sigilLen, q = 2, q+1
		case '!':
			selfClosed = true
			sigilLen, q = 2, q+1
		case '{':
			// escaped mustache, not a tag
			return i, false, nil
		}
	}
	_ = sigilLen
	nameStart := q
	for q < len(line) && (isAlphaNum(line[q]) || line[q] == '.' || line[q] == '_') {
		q++
	}
	name := line[nameStart:q]
	if name == "" {
		return i, false, nil
	}

	if !escaped && !selfClosed && t.isEndTag(name) {
		if err := t.closeTag(i+1, p, name); err != nil {
			return i, false, err
		}
		return i, true, nil
	}

	// the self-closed form is lexed for any known tag; whether it makes
	// sense for a non-block tag is a lint question, not a syntax one
	def, known := t.tags[name]
	if !known {
		return i, false, nil
	}

	tok := &token.Token{
		Kind:       token.Tag,
		Name:       name,
		SelfClosed: selfClosed,
	}
	if escaped {
		tok.Kind = token.EscapedTag
	}

	next = i
	rest := q
	if def.Seekable && q < len(line) && line[q] == '(' {
		arg, endLine, endCol, err := t.scanTagArg(i, q+1)
		if err != nil {
			return i, false, err
		}
		tok.JsArg = arg
		tok.Loc = token.Loc{
			Start: token.Position{Line: i + 1, Col: q + 1},
			End:   token.Position{Line: endLine + 1, Col: endCol},
		}
		next, rest = endLine, endCol
	} else {
		at := token.Position{Line: i + 1, Col: q}
		tok.Loc = token.Loc{Start: at, End: at}
	}

	t.emit(tok)
	if def.Block && !selfClosed && !escaped {
		tok.Children = []*token.Token{}
		t.stack = append(t.stack, tok)
	}
	if strings.TrimSpace(t.lines[next][rest:]) != "" {
		next, err = t.scanInline(next, rest)
		if err != nil {
			return next, false, err
		}
	}
	return next, true, nil
}

// scanTagArg consumes a parenthesized tag argument starting just after the
// opening paren at (line i, col p). Parens inside string literals do not
// count toward balance. Returns the argument text (without the closing
// paren), the line the argument ends on, and the column just past ')'.
func (t *tokenizer) scanTagArg(i, p int) (arg string, endLine, endCol int, err error) {
	var b strings.Builder
	depth := 1
	var quote byte
	openLine, openCol := i, p-1

	for {
		if i >= len(t.lines) {
			return "", 0, 0, t.errorf(openLine+1, openCol, "unclosed parenthesis in tag argument")
		}
		line := t.lines[i]
		if p >= len(line) {
			b.WriteByte('\n')
			i++
			p = 0
			continue
		}
		c := line[p]
		switch {
		case quote != 0:
			if c == '\\' && p+1 < len(line) {
				b.WriteByte(c)
				b.WriteByte(line[p+1])
				p += 2
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return b.String(), i, p + 1, nil
			}
		}
		b.WriteByte(c)
		p++
	}
}

// closeTag pops the innermost open block tag for an @end / @endname marker.
func (t *tokenizer) closeTag(line, col int, name string) error {
	if len(t.stack) == 0 {
		return t.errorf(line, col, "unexpected @%s with no open tag", name)
	}
	open := t.stack[len(t.stack)-1]
	if name != "end" && name[len("end"):] != open.Name {
		return t.errorf(line, col, "expected @end or @end%s, found @%s", open.Name, name)
	}
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

// scanInline lexes mustaches, comments and raw text starting at (line i,
// col pos). Multi-line constructs advance the line cursor; the index of the
// last consumed line is returned.
func (t *tokenizer) scanInline(i, pos int) (int, error) {
	line := t.lines[i]
	rawStart := pos

	for pos < len(line) {
		escaped := false
		open := pos
		if strings.HasPrefix(line[pos:], "@{{") {
			escaped = true
			open = pos + 1
		}
		if !strings.HasPrefix(line[open:], "{{") {
			pos++
			continue
		}

		t.emitRaw(i, line[rawStart:pos])

		if !escaped && strings.HasPrefix(line[open:], "{{--") {
			var err error
			i, pos, err = t.scanComment(i, open)
			if err != nil {
				return i, err
			}
			line = t.lines[i]
			rawStart = pos
			continue
		}

		var err error
		i, pos, err = t.scanMustache(i, open, escaped)
		if err != nil {
			return i, err
		}
		line = t.lines[i]
		rawStart = pos
	}

	t.emitRaw(i, line[rawStart:])
	return i, nil
}

// scanMustache consumes a mustache opening at (line i, col open), where open
// points at the first '{'. The closing delimiter is located by plain
// substring search: braces inside expression string literals are not
// understood, matching the engine's heuristic treatment of expressions.
func (t *tokenizer) scanMustache(i, open int, escaped bool) (endLine, endPos int, err error) {
	line := t.lines[i]
	openDelim, closeDelim := "{{", "}}"
	kind := token.Mustache
	if strings.HasPrefix(line[open:], "{{{") {
		openDelim, closeDelim = "{{{", "}}}"
		kind = token.SafeMustache
	}
	if escaped {
		if kind == token.SafeMustache {
			kind = token.EscapedSafeMustache
		} else {
			kind = token.EscapedMustache
		}
	}

	contentStart := open + len(openDelim)
	start := token.Position{Line: i + 1, Col: contentStart}

	var b strings.Builder
	searchFrom := contentStart
	for {
		line = t.lines[i]
		if idx := strings.Index(line[searchFrom:], closeDelim); idx >= 0 {
			closeCol := searchFrom + idx
			b.WriteString(line[searchFrom:closeCol])
			t.emit(&token.Token{
				Kind:  kind,
				Value: b.String(),
				Loc: token.Loc{
					Start: start,
					End:   token.Position{Line: i + 1, Col: closeCol},
				},
			})
			return i, closeCol + len(closeDelim), nil
		}
		b.WriteString(line[searchFrom:])
		b.WriteByte('\n')
		if i++; i >= len(t.lines) {
			return i, 0, t.errorf(start.Line, open, "unclosed mustache %s", openDelim)
		}
		searchFrom = 0
	}
}

// scanComment consumes a {{-- ... --}} comment opening at (line i, col open).
func (t *tokenizer) scanComment(i, open int) (endLine, endPos int, err error) {
	contentStart := open + len("{{--")
	start := token.Position{Line: i + 1, Col: contentStart}

	var b strings.Builder
	searchFrom := contentStart
	for {
		line := t.lines[i]
		if idx := strings.Index(line[searchFrom:], "--}}"); idx >= 0 {
			closeCol := searchFrom + idx
			b.WriteString(line[searchFrom:closeCol])
			t.emit(&token.Token{
				Kind:  token.Comment,
				Value: b.String(),
				Loc: token.Loc{
					Start: start,
					End:   token.Position{Line: i + 1, Col: closeCol},
				},
			})
			return i, closeCol + len("--}}"), nil
		}
		b.WriteString(line[searchFrom:])
		b.WriteByte('\n')
		if i++; i >= len(t.lines) {
			return i, 0, t.errorf(start.Line, open, "unclosed comment")
		}
		searchFrom = 0
	}
}

func (t *tokenizer) emitRaw(i int, text string) {
	if text == "" {
		return
	}
	t.emit(&token.Token{
		Kind:  token.Raw,
		Value: text,
		Loc:   token.Loc{Start: token.Position{Line: i + 1}},
	})
}

// isEndTag recognizes @end and @end<name> markers. An "end"-prefixed name
// that does not correspond to a known tag (such as @endless) lexes as raw
// text instead.
func (t *tokenizer) isEndTag(name string) bool {
	if name == "end" {
		return true
	}
	if !strings.HasPrefix(name, "end") {
		return false
	}
	_, known := t.tags[strings.TrimPrefix(name, "end")]
	return known
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

package rule

import "edgelint/internal/token"

// Visitor maps token kinds to callbacks. Nil entries are skipped. Tag fires
// before a tag's children are visited and TagExit immediately after, which
// is where post-order aggregation (such as counting duplicate sibling
// markers) happens. TreeEnter and TreeExit bracket the whole traversal and
// are the only place a rule can take a second pass over the flattened token
// list for forward-reference checks.
type Visitor struct {
	TreeEnter func(tree []*token.Token)
	TreeExit  func(tree []*token.Token)

	Tag                 func(*token.Token)
	TagExit             func(*token.Token)
	EscapedTag          func(*token.Token)
	Mustache            func(*token.Token)
	SafeMustache        func(*token.Token)
	EscapedMustache     func(*token.Token)
	EscapedSafeMustache func(*token.Token)
	Raw                 func(*token.Token)
	Comment             func(*token.Token)
	NewLine             func(*token.Token)
}

// Walk performs one depth-first pre-order traversal of the token tree,
// invoking every visitor's matching callback per token. Children are
// visited in stored insertion order, which is also document order.
func Walk(tree []*token.Token, visitors []Visitor) {
	for _, v := range visitors {
		if v.TreeEnter != nil {
			v.TreeEnter(tree)
		}
	}
	for _, t := range tree {
		walkToken(t, visitors)
	}
	for _, v := range visitors {
		if v.TreeExit != nil {
			v.TreeExit(tree)
		}
	}
}

func walkToken(t *token.Token, visitors []Visitor) {
	for _, v := range visitors {
		if cb := v.callbackFor(t.Kind); cb != nil {
			cb(t)
		}
	}
	if t.Kind == token.Tag {
		for _, child := range t.Children {
			walkToken(child, visitors)
		}
		for _, v := range visitors {
			if v.TagExit != nil {
				v.TagExit(t)
			}
		}
	}
}

func (v Visitor) callbackFor(k token.Kind) func(*token.Token) {
	switch k {
	case token.Tag:
		return v.Tag
	case token.EscapedTag:
		return v.EscapedTag
	case token.Mustache:
		return v.Mustache
	case token.SafeMustache:
		return v.SafeMustache
	case token.EscapedMustache:
		return v.EscapedMustache
	case token.EscapedSafeMustache:
		return v.EscapedSafeMustache
	case token.Raw:
		return v.Raw
	case token.Comment:
		return v.Comment
	case token.NewLine:
		return v.NewLine
	default:
		return nil
	}
}

// Protect wraps every callback of v with panic recovery. The first panic
// reports through onPanic and disables the visitor's remaining callbacks, so
// one failing rule cannot abort the shared traversal for the others.
func Protect(v Visitor, onPanic func(recovered any)) Visitor {
	failed := false
	guardTok := func(cb func(*token.Token)) func(*token.Token) {
		if cb == nil {
			return nil
		}
		return func(t *token.Token) {
			if failed {
				return
			}
			defer func() {
				if r := recover(); r != nil {
					failed = true
					onPanic(r)
				}
			}()
			cb(t)
		}
	}
	guardTree := func(cb func([]*token.Token)) func([]*token.Token) {
		if cb == nil {
			return nil
		}
		return func(tree []*token.Token) {
			if failed {
				return
			}
			defer func() {
				if r := recover(); r != nil {
					failed = true
					onPanic(r)
				}
			}()
			cb(tree)
		}
	}
	return Visitor{
		TreeEnter:           guardTree(v.TreeEnter),
		TreeExit:            guardTree(v.TreeExit),
		Tag:                 guardTok(v.Tag),
		TagExit:             guardTok(v.TagExit),
		EscapedTag:          guardTok(v.EscapedTag),
		Mustache:            guardTok(v.Mustache),
		SafeMustache:        guardTok(v.SafeMustache),
		EscapedMustache:     guardTok(v.EscapedMustache),
		EscapedSafeMustache: guardTok(v.EscapedSafeMustache),
		Raw:                 guardTok(v.Raw),
		Comment:             guardTok(v.Comment),
		NewLine:             guardTok(v.NewLine),
	}
}

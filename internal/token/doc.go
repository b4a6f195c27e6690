// Package token defines the token tree produced by tokenizing an Edge
// template: tags, mustaches, raw text, comments and newlines, each carrying
// a source location. Block tags own an ordered list of child tokens whose
// ranges are strictly nested within the parent's range.
//
// The tree is built once per lint pass and is immutable afterwards; every
// consumer holds read-only references.
package token

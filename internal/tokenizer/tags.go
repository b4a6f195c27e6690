package tokenizer

// TagDef describes how a tag name is lexed. Block tags own children up to a
// matching @end marker; seekable tags accept a parenthesized argument.
type TagDef struct {
	Block    bool
	Seekable bool
}

// DefaultTags returns the standard tag set. Callers merge their own
// definitions over it; recognition is driven entirely by this map, so an
// unknown name lexes as raw text rather than failing.
func DefaultTags() map[string]TagDef {
	return map[string]TagDef{
		"if":        {Block: true, Seekable: true},
		"elseif":    {Block: false, Seekable: true},
		"else":      {Block: false, Seekable: false},
		"each":      {Block: true, Seekable: true},
		"include":   {Block: false, Seekable: true},
		"includeIf": {Block: false, Seekable: true},
		"component": {Block: true, Seekable: true},
		"slot":      {Block: true, Seekable: true},
		"inject":    {Block: false, Seekable: true},
		"set":       {Block: false, Seekable: true},
		"assign":    {Block: false, Seekable: true},
		"let":       {Block: false, Seekable: true},
		"vite":      {Block: false, Seekable: true},
		"section":   {Block: true, Seekable: true},
		"layout":    {Block: true, Seekable: true},
		"super":     {Block: false, Seekable: false},
		"debugger":  {Block: false, Seekable: false},
	}
}

package token

// Kind represents the category of a template token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Tag represents a block or inline tag such as @if(...) or @include(...).
	Tag
	// EscapedTag represents an escaped tag (@@name) rendered literally.
	EscapedTag
	// Mustache represents a double-brace interpolation {{ expr }}.
	Mustache
	// SafeMustache represents a triple-brace interpolation {{{ expr }}} that
	// bypasses output escaping.
	SafeMustache
	// EscapedMustache represents an escaped interpolation @{{ expr }}.
	EscapedMustache
	// EscapedSafeMustache represents an escaped safe interpolation @{{{ expr }}}.
	EscapedSafeMustache
	// Raw represents literal template text.
	Raw
	// Comment represents a template comment {{-- ... --}}.
	Comment
	// NewLine represents a line break in the template source.
	NewLine
)

var kindNames = [...]string{
	Invalid:             "invalid",
	Tag:                 "tag",
	EscapedTag:          "e__tag",
	Mustache:            "mustache",
	SafeMustache:        "s__mustache",
	EscapedMustache:     "e__mustache",
	EscapedSafeMustache: "es__mustache",
	Raw:                 "raw",
	Comment:             "comment",
	NewLine:             "newline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsTag reports whether the kind is a tag variant.
func (k Kind) IsTag() bool { return k == Tag || k == EscapedTag }

// IsMustache reports whether the kind is any mustache variant.
func (k Kind) IsMustache() bool {
	switch k {
	case Mustache, SafeMustache, EscapedMustache, EscapedSafeMustache:
		return true
	default:
		return false
	}
}

// IsSafe reports whether the kind is a triple-brace mustache variant.
func (k Kind) IsSafe() bool { return k == SafeMustache || k == EscapedSafeMustache }

// IsEscaped reports whether the kind is an escaped variant (prefixed with @).
func (k Kind) IsEscaped() bool {
	switch k {
	case EscapedTag, EscapedMustache, EscapedSafeMustache:
		return true
	default:
		return false
	}
}

package diagfmt

// PrettyOpts configures pretty-printing of lint results.
type PrettyOpts struct {
	Color bool
	// ShowSource prints the offending line with a caret underline.
	ShowSource bool
	// Max truncates the per-file diagnostic list; 0 means unlimited.
	Max int
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	// Indent pretty-prints the JSON document.
	Indent bool
	// IncludeOutput embeds the fixed source of rewritten files.
	IncludeOutput bool
}

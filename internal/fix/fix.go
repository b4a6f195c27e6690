// Package fix represents auto-applicable text edits as absolute byte ranges
// with replacement text, and implements the batch operations the lint engine
// needs: conflict filtering, single-pass application, and merging the edits
// of one diagnostic into a single faithful replacement.
package fix

import "sort"

// Fix is one text edit: replace the half-open byte range [Start, End) of a
// source snapshot with Text. Start == End is a pure insertion. Offsets always
// refer to one consistent snapshot; they are never reused after application.
type Fix struct {
	Start uint32
	End   uint32
	Text  string
}

// Empty reports whether the fix changes nothing.
func (f Fix) Empty() bool { return f.Start == f.End && f.Text == "" }

// Fixer builds fixes for a diagnostic's fix callback. All convenience forms
// reduce to the one range+text shape.
type Fixer struct{}

// InsertBefore inserts text immediately before offset at.
func (Fixer) InsertBefore(at uint32, text string) Fix {
	return Fix{Start: at, End: at, Text: text}
}

// InsertAfter inserts text immediately after the range [start, end).
func (Fixer) InsertAfter(end uint32, text string) Fix {
	return Fix{Start: end, End: end, Text: text}
}

// Remove deletes the range [start, end).
func (Fixer) Remove(start, end uint32) Fix {
	return Fix{Start: start, End: end}
}

// Replace substitutes the range [start, end) with text.
func (Fixer) Replace(start, end uint32, text string) Fix {
	return Fix{Start: start, End: end, Text: text}
}

// Apply splices a single fix into src.
func Apply(src string, f Fix) string {
	if int(f.Start) > len(src) || int(f.End) > len(src) || f.Start > f.End {
		return src
	}
	return src[:f.Start] + f.Text + src[f.End:]
}

// ApplyAll applies a set of mutually non-overlapping fixes to src in one
// pass. Fixes are processed from the highest start offset down, so every
// splice happens in the original snapshot's coordinate space and no offset
// adjustment is needed. Equal starts are ordered by End descending: a pure
// insertion adjacent to a replacement at the same offset must be spliced
// after the replacement, or the replacement's range would swallow the
// inserted text.
func ApplyAll(src string, fixes []Fix) string {
	if len(fixes) == 0 {
		return src
	}
	ordered := append([]Fix(nil), fixes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start > ordered[j].Start
		}
		return ordered[i].End > ordered[j].End
	})
	for _, f := range ordered {
		src = Apply(src, f)
	}
	return src
}

// NonOverlapping filters fixes down to a mutually non-overlapping subset.
// Fixes are ordered by start offset; a fix survives only if it begins at or
// after the end of the previously kept fix. On collision the fix with the
// earliest start wins, which is the engine's deterministic tie-break when
// independent rules propose overlapping edits in one pass. A pure insertion
// followed by an edit starting at the same offset is adjacent, not
// overlapping, and both are kept.
func NonOverlapping(fixes []Fix) []Fix {
	if len(fixes) <= 1 {
		return fixes
	}
	ordered := append([]Fix(nil), fixes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].End < ordered[j].End
	})

	kept := make([]Fix, 0, len(ordered))
	kept = append(kept, ordered[0])
	lastEnd := ordered[0].End
	for _, f := range ordered[1:] {
		if f.Start < lastEnd {
			continue
		}
		kept = append(kept, f)
		lastEnd = f.End
	}
	return kept
}

// MergeForDiagnostic collapses the disjoint fixes of one diagnostic into a
// single fix spanning from the earliest start to the latest end. Gaps
// between the edits are backfilled from src so the merged replacement stays
// textually faithful outside the edited spans. ok is false when fixes is
// empty; a single fix passes through unchanged.
func MergeForDiagnostic(src string, fixes []Fix) (Fix, bool) {
	switch len(fixes) {
	case 0:
		return Fix{}, false
	case 1:
		return fixes[0], true
	}

	ordered := NonOverlapping(fixes)
	merged := Fix{Start: ordered[0].Start, End: ordered[0].End, Text: ordered[0].Text}
	for _, f := range ordered[1:] {
		merged.Text += src[merged.End:f.Start] + f.Text
		merged.End = f.End
	}
	return merged, true
}

// Package patch applies suggestions to a source buffer.
//
// All replacements of a patch are expressed against the one original buffer.
// They are validated, checked for conflicts, sorted and then applied in a
// single left-to-right pass, so no offset bookkeeping between edits is needed.
package patch

import (
	"sort"

	"github.com/yaklabco/depexport/pkg/suggest"
)

// Edit is a flattened replacement ready to be applied.
type Edit struct {
	// Range is the byte range of the original buffer being replaced.
	Range suggest.ByteRange

	// Text is the replacement text.
	Text string

	// Suggestion is the index of the suggestion the edit came from.
	Suggestion int

	// Replacement is the index of the edit within its selected solution.
	Replacement int

	// Snippet is the anchor the edit was built from.
	Snippet suggest.Snippet
}

// flatten collects the replacements of the selected solutions in
// suggestion order, then replacement order.
func flatten(suggestions []suggest.Suggestion, sel Selector) ([]Edit, error) {
	var edits []Edit

	for sIdx, sugg := range suggestions {
		if len(sugg.Solutions) == 0 {
			return nil, &NoSolutionError{Index: sIdx, Message: sugg.Message}
		}

		solution, err := sel(sugg)
		if err != nil {
			return nil, &SelectionError{Index: sIdx, Err: err}
		}

		for rIdx, repl := range solution.Replacements {
			edits = append(edits, Edit{
				Range:       repl.Snippet.ByteRange,
				Text:        repl.Text,
				Suggestion:  sIdx,
				Replacement: rIdx,
				Snippet:     repl.Snippet,
			})
		}
	}

	return edits, nil
}

// SortEdits sorts edits by start offset. Among edits starting at the same
// offset, insertions come before replacements; otherwise input order is kept.
func SortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Range.Start != edits[j].Range.Start {
			return edits[i].Range.Start < edits[j].Range.Start
		}
		return edits[i].Range.Empty() && !edits[j].Range.Empty()
	})
}

// DetectConflicts checks a sorted slice for edits that cannot be applied
// together. Besides overlapping ranges this also rejects an insertion that
// falls strictly inside a replaced range.
func DetectConflicts(edits []Edit) error {
	reach := -1 // index of the edit with the furthest end so far

	for i, curr := range edits {
		if reach >= 0 && curr.Range.Start < edits[reach].Range.End {
			return &ConflictError{First: edits[reach], Second: curr}
		}
		if reach < 0 || curr.Range.End > edits[reach].Range.End {
			reach = i
		}
	}

	return nil
}

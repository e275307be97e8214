package patch

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/depexport/pkg/suggest"
)

// Selector picks the solution to apply from a suggestion.
// It is only called for suggestions with at least one solution.
type Selector func(suggest.Suggestion) (suggest.Solution, error)

// FirstSolution selects the first (primary) solution.
func FirstSolution(s suggest.Suggestion) (suggest.Solution, error) {
	return s.Solutions[0], nil
}

// SolutionMatching returns a Selector that picks the first solution whose
// message equals message.
func SolutionMatching(message string) Selector {
	return func(s suggest.Suggestion) (suggest.Solution, error) {
		for _, sol := range s.Solutions {
			if sol.Message == message {
				return sol, nil
			}
		}
		return suggest.Solution{}, fmt.Errorf("no solution with message %q", message)
	}
}

type options struct {
	selector Selector
	fileName string
}

// Option configures Apply and Prepare.
type Option func(*options)

// WithSelector sets the solution selection policy. The default is FirstSolution.
func WithSelector(sel Selector) Option {
	return func(o *options) {
		if sel != nil {
			o.selector = sel
		}
	}
}

// WithFileName sets the file name reported in errors.
func WithFileName(name string) Option {
	return func(o *options) {
		o.fileName = name
	}
}

func buildOptions(opts []Option) options {
	o := options{selector: FirstSolution}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Prepare selects, validates, sorts and conflict-checks the replacements of
// suggestions against buffer. The returned edits are ready for ApplyEdits.
func Prepare(buffer string, suggestions []suggest.Suggestion, opts ...Option) ([]Edit, error) {
	o := buildOptions(opts)

	edits, err := flatten(suggestions, o.selector)
	if err != nil {
		return nil, err
	}

	for _, edit := range edits {
		snippet := edit.Snippet
		if snippet.FileName == "" {
			snippet.FileName = o.fileName
		}
		if err := suggest.Validate(snippet, buffer); err != nil {
			return nil, fmt.Errorf("suggestion %d, replacement %d: %w", edit.Suggestion, edit.Replacement, err)
		}
	}

	SortEdits(edits)

	if err := DetectConflicts(edits); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			conflict.FileName = o.fileName
		}
		return nil, err
	}

	return edits, nil
}

// Apply applies the selected solution of every suggestion to buffer and
// returns the patched text. It is all-or-nothing: on error no text is
// returned. buffer itself is never modified.
func Apply(buffer string, suggestions []suggest.Suggestion, opts ...Option) (string, error) {
	if len(suggestions) == 0 {
		return buffer, nil
	}

	edits, err := Prepare(buffer, suggestions, opts...)
	if err != nil {
		return "", err
	}

	return ApplyEdits(buffer, edits), nil
}

// ApplyBytes is Apply for byte buffers.
func ApplyBytes(buffer []byte, suggestions []suggest.Suggestion, opts ...Option) ([]byte, error) {
	if len(suggestions) == 0 {
		return bytes.Clone(buffer), nil
	}

	out, err := Apply(string(buffer), suggestions, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ApplyEdits applies a sorted, validated slice of edits to buffer.
// Edits must be prepared with Prepare before calling.
func ApplyEdits(buffer string, edits []Edit) string {
	if len(edits) == 0 {
		return buffer
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.Text) - e.Range.Len()
	}

	var out strings.Builder
	out.Grow(max(0, len(buffer)+delta))

	cursor := 0
	for _, e := range edits {
		out.WriteString(buffer[cursor:e.Range.Start])
		out.WriteString(e.Text)
		cursor = e.Range.End
	}
	out.WriteString(buffer[cursor:])

	return out.String()
}

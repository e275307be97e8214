// Package suggest defines the data model for positional source patches.
//
// A Suggestion offers one or more mutually exclusive Solutions. Each Solution
// is a set of Replacements whose byte ranges all refer to the same original
// buffer. Line and column positions are informational; only byte ranges and
// text are used when a patch is applied.
package suggest

import "fmt"

// LinePosition is a 1-based line and column in a source buffer.
type LinePosition struct {
	Line   int
	Column int
}

// Less reports whether p sorts before other in (line, column) order.
func (p LinePosition) Less(other LinePosition) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p LinePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineRange spans two line positions. Start must not sort after End.
type LineRange struct {
	Start LinePosition
	End   LinePosition
}

// Valid reports whether both positions are 1-based and Start <= End.
func (r LineRange) Valid() bool {
	if r.Start.Line < 1 || r.Start.Column < 1 || r.End.Line < 1 || r.End.Column < 1 {
		return false
	}
	return !r.End.Less(r.Start)
}

func (r LineRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ByteRange is the half-open interval [Start, End) of byte offsets.
type ByteRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no bytes (a pure insertion point).
func (r ByteRange) Empty() bool {
	return r.Start == r.End
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Overlaps reports whether a and b intersect. Touching ranges
// (a.End == b.Start) do not overlap; an insertion point strictly inside
// a range does.
func Overlaps(a, b ByteRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// Snippet anchors a replacement to a captured region of a buffer.
type Snippet struct {
	// FileName is for display only.
	FileName string

	// LineRange locates the snippet for humans.
	LineRange LineRange

	// ByteRange is the region of the buffer the snippet covers.
	ByteRange ByteRange

	// Text is the original content of ByteRange when the snippet was captured.
	Text string
}

// Replacement replaces the bytes under Snippet.ByteRange with Text.
type Replacement struct {
	Snippet Snippet
	Text    string
}

// Solution is one candidate fix: a set of replacements applied together.
type Solution struct {
	Message      string
	Replacements []Replacement
}

// Suggestion is a set of mutually exclusive solutions for one location.
type Suggestion struct {
	Message   string
	Solutions []Solution
}

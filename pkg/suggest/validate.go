package suggest

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	ErrSnippetMismatch  = errors.New("snippet mismatch")
)

// RangeOutOfBoundsError reports a byte range that does not fit the buffer.
type RangeOutOfBoundsError struct {
	FileName  string
	Range     ByteRange
	BufferLen int
}

func (e *RangeOutOfBoundsError) Error() string {
	return fmt.Sprintf("%sbyte range %s out of bounds for buffer of length %d",
		filePrefix(e.FileName), e.Range, e.BufferLen)
}

// Is matches ErrRangeOutOfBounds.
func (e *RangeOutOfBoundsError) Is(target error) bool {
	return target == ErrRangeOutOfBounds
}

// SnippetMismatchError reports that the buffer no longer holds the text a
// snippet was captured from.
type SnippetMismatchError struct {
	FileName  string
	Range     ByteRange
	LineRange LineRange
	Expected  string
	Actual    string
}

func (e *SnippetMismatchError) Error() string {
	loc := e.Range.String()
	if e.LineRange.Valid() {
		loc += " (" + e.LineRange.String() + ")"
	}
	return fmt.Sprintf("%ssnippet mismatch at %s: expected %q, found %q",
		filePrefix(e.FileName), loc, e.Expected, e.Actual)
}

// Is matches ErrSnippetMismatch.
func (e *SnippetMismatchError) Is(target error) bool {
	return target == ErrSnippetMismatch
}

// Validate checks that snippet still describes buffer.
// The range must fit inside the buffer and the bytes under it must equal
// snippet.Text exactly. A zero-length range matches only empty text.
func Validate(snippet Snippet, buffer string) error {
	rng := snippet.ByteRange
	if rng.Start < 0 || rng.End < rng.Start || rng.End > len(buffer) {
		return &RangeOutOfBoundsError{
			FileName:  snippet.FileName,
			Range:     rng,
			BufferLen: len(buffer),
		}
	}

	if actual := buffer[rng.Start:rng.End]; actual != snippet.Text {
		return &SnippetMismatchError{
			FileName:  snippet.FileName,
			Range:     rng,
			LineRange: snippet.LineRange,
			Expected:  snippet.Text,
			Actual:    actual,
		}
	}

	return nil
}

func filePrefix(name string) string {
	if name == "" {
		return ""
	}
	return name + ": "
}

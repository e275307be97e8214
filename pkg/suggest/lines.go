package suggest

import "sort"

// LineIndex maps byte offsets of a buffer to 1-based line/column positions.
// Columns count bytes, not runes.
type LineIndex struct {
	starts []int
	size   int
}

// NewLineIndex indexes the line starts of buffer.
// Both LF and CRLF endings are handled; a line starts after each '\n'.
func NewLineIndex(buffer string) *LineIndex {
	starts := []int{0}
	for idx := 0; idx < len(buffer); idx++ {
		if buffer[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &LineIndex{starts: starts, size: len(buffer)}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Position converts a byte offset to a line position.
// Offsets outside the buffer are clamped to its bounds.
func (li *LineIndex) Position(offset int) LinePosition {
	offset = max(0, min(offset, li.size))

	// Index of the last line start <= offset.
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1

	return LinePosition{Line: line + 1, Column: offset - li.starts[line] + 1}
}

// Range converts a byte range to a line range.
func (li *LineIndex) Range(rng ByteRange) LineRange {
	return LineRange{Start: li.Position(rng.Start), End: li.Position(rng.End)}
}

// NewReplacement captures buffer[start:end] and returns a Replacement that
// swaps it for text. Offsets are not checked here; Validate reports bad ones.
func NewReplacement(fileName, buffer string, start, end int, text string) Replacement {
	rng := ByteRange{Start: start, End: end}

	captured := ""
	if start >= 0 && start <= end && end <= len(buffer) {
		captured = buffer[start:end]
	}

	return Replacement{
		Snippet: Snippet{
			FileName:  fileName,
			LineRange: NewLineIndex(buffer).Range(rng),
			ByteRange: rng,
			Text:      captured,
		},
		Text: text,
	}
}

// NewInsertion returns a Replacement that inserts text at offset.
func NewInsertion(fileName, buffer string, offset int, text string) Replacement {
	return NewReplacement(fileName, buffer, offset, offset, text)
}

// Single wraps one replacement in a suggestion with a single solution.
func Single(message string, repl Replacement) Suggestion {
	return Suggestion{
		Message: message,
		Solutions: []Solution{{
			Message:      message,
			Replacements: []Replacement{repl},
		}},
	}
}

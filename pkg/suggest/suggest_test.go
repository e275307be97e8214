package suggest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/depexport/pkg/suggest"
)

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b suggest.ByteRange
		want bool
	}{
		{"disjoint", suggest.ByteRange{Start: 0, End: 2}, suggest.ByteRange{Start: 4, End: 6}, false},
		{"touching", suggest.ByteRange{Start: 0, End: 3}, suggest.ByteRange{Start: 3, End: 6}, false},
		{"partial overlap", suggest.ByteRange{Start: 0, End: 5}, suggest.ByteRange{Start: 3, End: 8}, true},
		{"contained", suggest.ByteRange{Start: 0, End: 10}, suggest.ByteRange{Start: 3, End: 4}, true},
		{"identical", suggest.ByteRange{Start: 2, End: 4}, suggest.ByteRange{Start: 2, End: 4}, true},
		{"insertion inside range", suggest.ByteRange{Start: 2, End: 2}, suggest.ByteRange{Start: 0, End: 4}, true},
		{"insertion at range start", suggest.ByteRange{Start: 0, End: 0}, suggest.ByteRange{Start: 0, End: 4}, false},
		{"insertion at range end", suggest.ByteRange{Start: 4, End: 4}, suggest.ByteRange{Start: 0, End: 4}, false},
		{"two insertions same point", suggest.ByteRange{Start: 2, End: 2}, suggest.ByteRange{Start: 2, End: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, suggest.Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, suggest.Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	const buffer = "abcdef"

	tests := []struct {
		name    string
		snippet suggest.Snippet
		wantErr error
	}{
		{
			name:    "matching range",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 2, End: 4}, Text: "cd"},
		},
		{
			name:    "empty range at end",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 6, End: 6}},
		},
		{
			name:    "end past buffer",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 4, End: 7}, Text: "ef?"},
			wantErr: suggest.ErrRangeOutOfBounds,
		},
		{
			name:    "negative start",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: -1, End: 1}},
			wantErr: suggest.ErrRangeOutOfBounds,
		},
		{
			name:    "inverted range",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 4, End: 2}},
			wantErr: suggest.ErrRangeOutOfBounds,
		},
		{
			name:    "stale text",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 2, End: 4}, Text: "xx"},
			wantErr: suggest.ErrSnippetMismatch,
		},
		{
			name:    "insertion expecting text",
			snippet: suggest.Snippet{ByteRange: suggest.ByteRange{Start: 0, End: 0}, Text: "use std::{"},
			wantErr: suggest.ErrSnippetMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := suggest.Validate(tt.snippet, buffer)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSnippetMismatchError_Details(t *testing.T) {
	t.Parallel()

	buffer := "line one\nline two\n"
	repl := suggest.NewReplacement("lib.rs", buffer, 9, 13, "LINE")
	repl.Snippet.Text = "xxxx"

	err := suggest.Validate(repl.Snippet, buffer)

	var mismatch *suggest.SnippetMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "xxxx", mismatch.Expected)
	assert.Equal(t, "line", mismatch.Actual)
	assert.Contains(t, err.Error(), "lib.rs: ")
	assert.Contains(t, err.Error(), "[9:13) (2:1-2:5)")
}

func TestLineIndex_Position(t *testing.T) {
	t.Parallel()

	idx := suggest.NewLineIndex("ab\r\ncd\nef")

	tests := []struct {
		offset int
		want   suggest.LinePosition
	}{
		{0, suggest.LinePosition{Line: 1, Column: 1}},
		{2, suggest.LinePosition{Line: 1, Column: 3}},
		{4, suggest.LinePosition{Line: 2, Column: 1}},
		{7, suggest.LinePosition{Line: 3, Column: 1}},
		{9, suggest.LinePosition{Line: 3, Column: 3}},
		{100, suggest.LinePosition{Line: 3, Column: 3}},
		{-5, suggest.LinePosition{Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Position(tt.offset), "offset %d", tt.offset)
	}
	assert.Equal(t, 3, idx.LineCount())
}

func TestLineRange_Valid(t *testing.T) {
	t.Parallel()

	pos := func(line, col int) suggest.LinePosition {
		return suggest.LinePosition{Line: line, Column: col}
	}

	assert.True(t, suggest.LineRange{Start: pos(1, 1), End: pos(1, 1)}.Valid())
	assert.True(t, suggest.LineRange{Start: pos(1, 9), End: pos(2, 1)}.Valid())
	assert.False(t, suggest.LineRange{Start: pos(2, 1), End: pos(1, 9)}.Valid())
	assert.False(t, suggest.LineRange{Start: pos(1, 3), End: pos(1, 2)}.Valid())
	assert.False(t, suggest.LineRange{}.Valid())
}

func TestNewInsertion(t *testing.T) {
	t.Parallel()

	repl := suggest.NewInsertion("main.rs", "fn main() {}\n", 0, "pub mod deps {}\n")

	assert.True(t, repl.Snippet.ByteRange.Empty())
	assert.Empty(t, repl.Snippet.Text)
	assert.Equal(t, suggest.LinePosition{Line: 1, Column: 1}, repl.Snippet.LineRange.Start)
	assert.NoError(t, suggest.Validate(repl.Snippet, "fn main() {}\n"))
}

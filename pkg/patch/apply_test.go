package patch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/suggest"
)

// replace builds a single-solution suggestion for buffer[start:end] -> text.
func replace(buffer string, start, end int, text string) suggest.Suggestion {
	return suggest.Single("", suggest.NewReplacement("", buffer, start, end, text))
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		buffer      string
		suggestions func(buffer string) []suggest.Suggestion
		want        string
	}{
		{
			name:        "no suggestions returns original",
			buffer:      "hello world",
			suggestions: func(string) []suggest.Suggestion { return nil },
			want:        "hello world",
		},
		{
			name:   "single replacement",
			buffer: "abcdef",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 2, 4, "XY")}
			},
			want: "abXYef",
		},
		{
			name:   "insertion and replacement",
			buffer: "abcdef",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 2, 4, "XY"), replace(b, 0, 0, "Z")}
			},
			want: "ZabXYef",
		},
		{
			name:   "single insertion",
			buffer: "hello world",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 5, 5, " beautiful")}
			},
			want: "hello beautiful world",
		},
		{
			name:   "insert at end",
			buffer: "hello",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 5, 5, " world")}
			},
			want: "hello world",
		},
		{
			name:   "deletion",
			buffer: "hello world",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 5, 11, "")}
			},
			want: "hello",
		},
		{
			name:   "adjacent replacements",
			buffer: "abcdef",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{
					replace(b, 4, 6, "ZZ"),
					replace(b, 0, 2, "XX"),
					replace(b, 2, 4, "YY"),
				}
			},
			want: "XXYYZZ",
		},
		{
			name:   "insertions at same offset keep input order",
			buffer: "ac",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 1, 1, "b1"), replace(b, 1, 1, "b2")}
			},
			want: "ab1b2c",
		},
		{
			name:   "insertion at start of replaced range",
			buffer: "abcdef",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 2, 4, "XY"), replace(b, 2, 2, "_")}
			},
			want: "ab_XYef",
		},
		{
			name:   "insertion at end of replaced range",
			buffer: "abcdef",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 4, 4, "_"), replace(b, 2, 4, "XY")}
			},
			want: "abXY_ef",
		},
		{
			name:   "empty buffer insertion",
			buffer: "",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{replace(b, 0, 0, "pub mod deps {}\n")}
			},
			want: "pub mod deps {}\n",
		},
		{
			name:   "multi replacement solution",
			buffer: "one two three",
			suggestions: func(b string) []suggest.Suggestion {
				return []suggest.Suggestion{{
					Solutions: []suggest.Solution{{
						Replacements: []suggest.Replacement{
							suggest.NewReplacement("", b, 8, 13, "3"),
							suggest.NewReplacement("", b, 0, 3, "1"),
						},
					}},
				}}
			},
			want: "1 two 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := patch.Apply(tt.buffer, tt.suggestions(tt.buffer))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_OrderIndependence(t *testing.T) {
	t.Parallel()

	buffer := "the quick brown fox"
	first := replace(buffer, 4, 9, "slow")
	second := replace(buffer, 16, 19, "dog")

	forward, err := patch.Apply(buffer, []suggest.Suggestion{first, second})
	require.NoError(t, err)

	backward, err := patch.Apply(buffer, []suggest.Suggestion{second, first})
	require.NoError(t, err)

	assert.Equal(t, "the slow brown dog", forward)
	assert.Equal(t, forward, backward)
}

func TestApply_Conflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits [][2]int
		first suggest.ByteRange
		sec   suggest.ByteRange
	}{
		{
			name:  "partial overlap",
			edits: [][2]int{{0, 5}, {3, 8}},
			first: suggest.ByteRange{Start: 0, End: 5},
			sec:   suggest.ByteRange{Start: 3, End: 8},
		},
		{
			name:  "identical ranges",
			edits: [][2]int{{2, 4}, {2, 4}},
			first: suggest.ByteRange{Start: 2, End: 4},
			sec:   suggest.ByteRange{Start: 2, End: 4},
		},
		{
			name:  "overlap hidden behind insertion",
			edits: [][2]int{{0, 8}, {2, 2}, {3, 5}},
			first: suggest.ByteRange{Start: 0, End: 8},
			sec:   suggest.ByteRange{Start: 2, End: 2},
		},
		{
			name:  "insertion inside replaced range",
			edits: [][2]int{{4, 4}, {1, 7}},
			first: suggest.ByteRange{Start: 1, End: 7},
			sec:   suggest.ByteRange{Start: 4, End: 4},
		},
	}

	const buffer = "0123456789"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var suggestions []suggest.Suggestion
			for _, e := range tt.edits {
				suggestions = append(suggestions, replace(buffer, e[0], e[1], "x"))
			}

			got, err := patch.Apply(buffer, suggestions, patch.WithFileName("lib.rs"))
			require.ErrorIs(t, err, patch.ErrConflictingReplacements)
			assert.Empty(t, got, "no partial output on conflict")

			var conflict *patch.ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.first, conflict.First.Range)
			assert.Equal(t, tt.sec, conflict.Second.Range)
			assert.Contains(t, err.Error(), "lib.rs: ")
		})
	}
}

func TestApply_SnippetMismatch(t *testing.T) {
	t.Parallel()

	stale := replace("abcdef", 2, 4, "XY")

	got, err := patch.Apply("abZZef", []suggest.Suggestion{stale})
	require.ErrorIs(t, err, suggest.ErrSnippetMismatch)
	assert.Empty(t, got)

	var mismatch *suggest.SnippetMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "cd", mismatch.Expected)
	assert.Equal(t, "ZZ", mismatch.Actual)
}

func TestApply_RangeOutOfBounds(t *testing.T) {
	t.Parallel()

	long := replace("abcdefgh", 6, 8, "X")

	_, err := patch.Apply("abcdef", []suggest.Suggestion{long})
	require.ErrorIs(t, err, suggest.ErrRangeOutOfBounds)
}

func TestApply_ValidationIsAllOrNothing(t *testing.T) {
	t.Parallel()

	buffer := "abcdef"
	good := replace(buffer, 0, 1, "A")
	bad := replace(buffer, 2, 4, "XY")
	bad.Solutions[0].Replacements[0].Snippet.Text = "zz"

	got, err := patch.Apply(buffer, []suggest.Suggestion{good, bad})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "abcdef", buffer)
}

func TestApply_NoSolution(t *testing.T) {
	t.Parallel()

	_, err := patch.Apply("abc", []suggest.Suggestion{{Message: "empty"}})
	require.ErrorIs(t, err, patch.ErrNoSolution)
	assert.Contains(t, err.Error(), "empty")
}

func TestApply_Selector(t *testing.T) {
	t.Parallel()

	buffer := "value"
	sugg := suggest.Suggestion{
		Message: "rename",
		Solutions: []suggest.Solution{
			{Message: "short", Replacements: []suggest.Replacement{suggest.NewReplacement("", buffer, 0, 5, "v")}},
			{Message: "long", Replacements: []suggest.Replacement{suggest.NewReplacement("", buffer, 0, 5, "theValue")}},
		},
	}

	got, err := patch.Apply(buffer, []suggest.Suggestion{sugg})
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	got, err = patch.Apply(buffer, []suggest.Suggestion{sugg}, patch.WithSelector(patch.SolutionMatching("long")))
	require.NoError(t, err)
	assert.Equal(t, "theValue", got)

	_, err = patch.Apply(buffer, []suggest.Suggestion{sugg}, patch.WithSelector(patch.SolutionMatching("missing")))
	var selErr *patch.SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, 0, selErr.Index)
}

func TestApplyBytes_PreservesInput(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")
	sugg := replace(string(content), 0, 5, "hi")

	out, err := patch.ApplyBytes(content, []suggest.Suggestion{sugg})
	require.NoError(t, err)
	assert.Equal(t, "hi world", string(out))
	assert.Equal(t, "hello world", string(content))
}

func TestApplyBytes_NoSuggestionsReturnsCopy(t *testing.T) {
	t.Parallel()

	content := []byte("fn main() {}\n")

	out, err := patch.ApplyBytes(content, nil)
	require.NoError(t, err)
	assert.Equal(t, content, out)

	out[0] = 'X'
	assert.Equal(t, "fn main() {}\n", string(content))
}

func TestPrepare_SortsEdits(t *testing.T) {
	t.Parallel()

	buffer := "abcdef"
	edits, err := patch.Prepare(buffer, []suggest.Suggestion{
		replace(buffer, 4, 6, "3"),
		replace(buffer, 2, 4, "2"),
		replace(buffer, 0, 0, "1"),
	})
	require.NoError(t, err)
	require.Len(t, edits, 3)

	assert.Equal(t, 0, edits[0].Range.Start)
	assert.Equal(t, 2, edits[0].Suggestion)
	assert.Equal(t, 2, edits[1].Range.Start)
	assert.Equal(t, 4, edits[2].Range.Start)
}

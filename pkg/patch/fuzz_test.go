package patch_test

import (
	"testing"

	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/suggest"
)

func FuzzApplyInsertion(f *testing.F) {
	f.Add("", 0, "x")
	f.Add("abcdef", 0, "Z")
	f.Add("abcdef", 6, "tail")
	f.Add("fn main() {}\n", 3, "pub mod deps {}\n")

	f.Fuzz(func(t *testing.T, buffer string, offset int, text string) {
		if offset < 0 || offset > len(buffer) {
			return
		}

		got, err := patch.Apply(buffer, []suggest.Suggestion{
			suggest.Single("", suggest.NewInsertion("", buffer, offset, text)),
		})
		if err != nil {
			t.Fatalf("insertion at %d failed: %v", offset, err)
		}

		want := buffer[:offset] + text + buffer[offset:]
		if got != want {
			t.Errorf("Apply() = %q, want %q", got, want)
		}

		identity, err := patch.Apply(buffer, nil)
		if err != nil || identity != buffer {
			t.Errorf("identity patch changed buffer: %q, %v", identity, err)
		}
	})
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add("", "")
	f.Add("hello", "world")
	f.Add("a\nb\nc\n", "a\nx\nc\n")
	f.Add("line1\nline2\nline3\n", "line1\nline3\n")

	f.Fuzz(func(t *testing.T, original, modified string) {
		diff := patch.GenerateDiff("fuzz.txt", original, modified)
		if diff == nil {
			if original != modified {
				t.Errorf("nil diff for differing inputs %q and %q", original, modified)
			}
			return
		}

		_ = diff.FullString()

		for hunkIdx, hunk := range diff.Hunks {
			var origCount, modCount int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case patch.DiffLineContext:
					origCount++
					modCount++
				case patch.DiffLineAdd:
					modCount++
				case patch.DiffLineRemove:
					origCount++
				}
			}
			if origCount != hunk.OriginalCount || modCount != hunk.ModifiedCount {
				t.Errorf("hunk %d: counts %d/%d, header says %d/%d",
					hunkIdx, origCount, modCount, hunk.OriginalCount, hunk.ModifiedCount)
			}
		}
	})
}

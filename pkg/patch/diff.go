package patch

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a unified, line-based diff between a buffer and its patched form.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk is a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based line where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of original lines in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of modified lines in this hunk.
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine is a single line in a diff hunk, without its prefix or newline.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff computes a unified diff between original and modified.
// Returns nil if the two are identical.
func GenerateDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	dmp := diffmatchpatch.New()
	origRunes, modRunes, lineArray := dmp.DiffLinesToRunes(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(origRunes, modRunes, false), lineArray)

	var ops []DiffLine
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		case diffmatchpatch.DiffEqual:
		}
		for _, line := range splitLines(d.Text) {
			ops = append(ops, DiffLine{Kind: kind, Content: line})
		}
	}

	diff := &Diff{Path: path, Hunks: buildHunks(ops)}
	if len(diff.Hunks) == 0 {
		return nil
	}

	for _, op := range ops {
		switch op.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		case DiffLineContext:
		}
	}

	return diff
}

// buildHunks groups changed lines with up to contextLines of surrounding
// context. Changes separated by at most 2*contextLines share a hunk.
func buildHunks(ops []DiffLine) []DiffHunk {
	// origBefore[i] and modBefore[i] count the lines preceding ops[i].
	origBefore := make([]int, len(ops)+1)
	modBefore := make([]int, len(ops)+1)
	for i, op := range ops {
		origBefore[i+1] = origBefore[i]
		modBefore[i+1] = modBefore[i]
		if op.Kind != DiffLineAdd {
			origBefore[i+1]++
		}
		if op.Kind != DiffLineRemove {
			modBefore[i+1]++
		}
	}

	var hunks []DiffHunk
	idx := 0
	for idx < len(ops) {
		if ops[idx].Kind == DiffLineContext {
			idx++
			continue
		}

		start := max(0, idx-contextLines)
		end := idx
		for end < len(ops) {
			if ops[end].Kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == DiffLineContext {
				run++
			}
			if run < len(ops) && run-end <= 2*contextLines {
				end = run
				continue
			}
			end = min(run, end+contextLines)
			break
		}

		hunk := DiffHunk{
			OriginalCount: origBefore[end] - origBefore[start],
			ModifiedCount: modBefore[end] - modBefore[start],
			Lines:         ops[start:end],
		}
		hunk.OriginalStart = hunkStart(origBefore[start], hunk.OriginalCount)
		hunk.ModifiedStart = hunkStart(modBefore[start], hunk.ModifiedCount)
		hunks = append(hunks, hunk)

		idx = end
	}

	return hunks
}

// hunkStart follows the unified diff convention: an empty side reports the
// line before the hunk.
func hunkStart(before, count int) int {
	if count == 0 {
		return before
	}
	return before + 1
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format (without the git header).
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')

		for _, line := range hunk.Lines {
			builder.WriteString(line.String())
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// String returns the line with its diff prefix.
func (l DiffLine) String() string {
	switch l.Kind {
	case DiffLineAdd:
		return "+" + l.Content
	case DiffLineRemove:
		return "-" + l.Content
	case DiffLineContext:
	}
	return " " + l.Content
}

// splitLines splits text into lines, dropping the empty element after a
// trailing newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

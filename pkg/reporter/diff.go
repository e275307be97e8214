package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/depexport/internal/ui/pretty"
	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/runner"
)

// DiffReporter formats results as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var targetsWithDiffs int
	var totalAdditions, totalDeletions int

	for _, outcome := range result.Targets {
		path := outcomePath(r.opts, outcome)

		if outcome.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
			)
			continue
		}

		if !outcome.Diff.HasChanges() {
			continue
		}

		targetsWithDiffs++
		totalAdditions += outcome.Diff.Additions
		totalDeletions += outcome.Diff.Deletions
		r.writeDiff(path, outcome.Diff)
	}

	if targetsWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(targetsWithDiffs, totalAdditions, totalDeletions)
	}

	return targetsWithDiffs, nil
}

// writeDiff outputs a single target's diff under path.
func (r *DiffReporter) writeDiff(path string, diff *patch.Diff) {
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			r.writeDiffLine(line)
		}
	}

	fmt.Fprintln(r.bw)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line patch.DiffLine) {
	var styled string

	switch line.Kind {
	case patch.DiffLineAdd:
		styled = r.styles.DiffAdd.Render(line.String())
	case patch.DiffLineRemove:
		styled = r.styles.DiffRemove.Render(line.String())
	default:
		styled = r.styles.DiffContext.Render(line.String())
	}

	fmt.Fprintln(r.bw, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

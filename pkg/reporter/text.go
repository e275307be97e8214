package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/depexport/internal/ui/pretty"
	"github.com/yaklabco/depexport/pkg/runner"
)

// TextReporter prints each target's patched entry file. With more than
// one target every file is preceded by a header line. Errors and the
// summary go to the error writer.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	errOut io.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	errOut := opts.ErrorWriter
	if errOut == nil {
		errOut = opts.Writer
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, errOut)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		errOut: errOut,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Targets) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.errOut, r.styles.Success.Render("No targets to process."))
		}
		return 0, nil
	}

	multi := len(result.Targets) > 1
	var changed int

	for _, outcome := range result.Targets {
		path := outcomePath(r.opts, outcome)

		if outcome.Error != nil {
			fmt.Fprintf(r.errOut, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
			)
			continue
		}

		if outcome.Changed() {
			changed++
		}

		if multi {
			fmt.Fprintf(r.bw, "==> %s <==\n", path)
		}
		if _, err := io.WriteString(r.bw, outcome.Patched); err != nil {
			return changed, fmt.Errorf("write %s: %w", path, err)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.errOut, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changed, nil
}

// Package reporter renders runner results as patched source, diffs, or JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of targets whose entry file changed and any
	// write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

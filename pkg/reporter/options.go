package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter receives target errors and, for the text format, the
	// summary, so that Writer carries only source (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// displayPath makes path relative to workDir for display. Paths that
// would climb more than two directories keep their base name only.
func displayPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// outcomePath is the display path of a target outcome.
func outcomePath(opts Options, outcome runner.TargetOutcome) string {
	if outcome.Target.Name != "" {
		return outcome.Target.Name
	}
	return displayPath(opts.WorkingDir, outcome.Target.Entry)
}

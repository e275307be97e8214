package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/depexport/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	Targets []JSONTarget `json:"targets"`
	Summary JSONSummary  `json:"summary"`
}

// JSONTarget represents a single target's outcome.
type JSONTarget struct {
	Name       string   `json:"name"`
	Entry      string   `json:"entry"`
	Language   string   `json:"language,omitempty"`
	Discovered int      `json:"discovered"`
	Deps       []string `json:"deps"`
	Changed    bool     `json:"changed"`
	Written    bool     `json:"written,omitempty"`
	Backup     string   `json:"backup,omitempty"`
	Additions  int      `json:"additions,omitempty"`
	Deletions  int      `json:"deletions,omitempty"`
	Diff       string   `json:"diff,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Targets          int `json:"targets"`
	TargetsChanged   int `json:"targetsChanged"`
	TargetsUnchanged int `json:"targetsUnchanged"`
	TargetsErrored   int `json:"targetsErrored"`
	FilesWritten     int `json:"filesWritten"`
	DepsExported     int `json:"depsExported"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TargetsChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Targets: make([]JSONTarget, 0),
	}

	if result == nil {
		return output
	}

	output.Targets = make([]JSONTarget, 0, len(result.Targets))
	for _, outcome := range result.Targets {
		target := JSONTarget{
			Name:       outcomePath(r.opts, outcome),
			Entry:      displayPath(r.opts.WorkingDir, outcome.Target.Entry),
			Language:   outcome.Language,
			Discovered: outcome.Discovered,
			Deps:       outcome.Deps,
			Changed:    outcome.Changed(),
			Written:    outcome.Write.Written,
			Backup:     outcome.Write.BackupPath,
		}
		if target.Deps == nil {
			target.Deps = []string{}
		}
		if outcome.Error != nil {
			target.Error = outcome.Error.Error()
		}
		if outcome.Diff.HasChanges() {
			target.Additions = outcome.Diff.Additions
			target.Deletions = outcome.Diff.Deletions
			target.Diff = outcome.Diff.String()
		}

		output.Targets = append(output.Targets, target)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		Targets:          stats.Targets,
		TargetsChanged:   stats.TargetsChanged,
		TargetsUnchanged: stats.TargetsUnchanged,
		TargetsErrored:   stats.TargetsErrored,
		FilesWritten:     stats.FilesWritten,
		DepsExported:     stats.DepsExported,
	}

	return output
}

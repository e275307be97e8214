package runner

import (
	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/fsutil"
	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/suggest"
)

// TargetOutcome is the result of processing one target.
type TargetOutcome struct {
	// Target is the processed target with resolved paths.
	Target config.Target

	// Language is the profile language used for the block.
	Language string

	// Discovered is the number of dependencies found before filtering.
	Discovered int

	// Deps are the dependencies in the generated block.
	Deps []string

	// Original and Patched are the entry file before and after patching.
	Original string
	Patched  string

	// Suggestions are the suggestions that produced Patched.
	Suggestions []suggest.Suggestion

	// Diff is nil when the entry file is already up to date.
	Diff *patch.Diff

	// Write reports what was written to disk, if anything.
	Write fsutil.WriteResult

	// Error is set if the target could not be processed.
	Error error
}

// Changed reports whether patching changed the entry file.
func (o TargetOutcome) Changed() bool {
	return o.Error == nil && o.Diff.HasChanges()
}

// Stats captures aggregate information about a run.
type Stats struct {
	Targets          int
	TargetsChanged   int
	TargetsUnchanged int
	TargetsErrored   int
	FilesWritten     int
	DepsExported     int
}

// Result is the overall runner result.
type Result struct {
	// Targets holds one outcome per target, in input order.
	Targets []TargetOutcome

	Stats Stats
}

// HasErrors reports whether any target failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.TargetsErrored > 0
}

func (r *Result) accumulate(outcome TargetOutcome) {
	r.Targets = append(r.Targets, outcome)
	r.Stats.Targets++

	switch {
	case outcome.Error != nil:
		r.Stats.TargetsErrored++
		return
	case outcome.Changed():
		r.Stats.TargetsChanged++
	default:
		r.Stats.TargetsUnchanged++
	}

	r.Stats.DepsExported += len(outcome.Deps)
	if outcome.Write.Written {
		r.Stats.FilesWritten++
	}
}

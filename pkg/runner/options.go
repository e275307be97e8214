// Package runner orchestrates re-export generation across targets.
package runner

import (
	"path/filepath"

	"github.com/yaklabco/depexport/pkg/config"
)

// Options controls a run.
type Options struct {
	// Targets are the entry files to process. Defaults to the runner
	// config's targets.
	Targets []config.Target

	// WorkingDir resolves relative target paths.
	// If empty, paths are used as given.
	WorkingDir string

	// Jobs caps concurrently processed targets.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// effectiveTargets returns the targets to process with paths resolved.
func (o Options) effectiveTargets(fallback []config.Target) []config.Target {
	targets := o.Targets
	if len(targets) == 0 {
		targets = fallback
	}

	resolved := make([]config.Target, len(targets))
	for i, t := range targets {
		t.Entry = o.resolve(t.Entry)
		t.DocModel = o.resolve(t.DocModel)
		t.Manifest = o.resolve(t.Manifest)
		t.GoMod = o.resolve(t.GoMod)
		resolved[i] = t
	}
	return resolved
}

func (o Options) resolve(path string) string {
	if path == "" || o.WorkingDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.WorkingDir, path)
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/depexport/internal/logging"
	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/discovery"
	"github.com/yaklabco/depexport/pkg/fsutil"
	"github.com/yaklabco/depexport/pkg/generate"
	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/suggest"
)

// ErrNoTargets is returned when a run has nothing to process.
var ErrNoTargets = errors.New("no targets configured")

// Runner generates and applies re-export blocks for a set of targets.
type Runner struct {
	// Config supplies generation settings shared by all targets.
	Config *config.Config
}

// New creates a Runner. A nil cfg means defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Runner{Config: cfg}
}

// Run processes every target concurrently, at most opts.Jobs at a time.
// A failing target is recorded in its outcome and does not stop the others.
// Outcomes are returned in input order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	targets := opts.effectiveTargets(r.Config.Targets)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting run", logging.FieldTargets, len(targets), logging.FieldJobs, jobs)

	outcomes := make([]TargetOutcome, len(targets))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, target := range targets {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("run cancelled: %w", err)
			}
			outcomes[i] = r.ProcessTarget(gctx, target)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Targets: make([]TargetOutcome, 0, len(targets))}
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result, nil
}

// ProcessTarget runs the full pipeline for one target: read the entry file,
// discover and filter dependencies, render the block, patch, diff, and
// write back when the config asks for it.
func (r *Runner) ProcessTarget(ctx context.Context, target config.Target) TargetOutcome {
	outcome := TargetOutcome{Target: target}
	logger := logging.FromContext(ctx).With(logging.FieldTarget, target.DisplayName())

	if err := r.process(ctx, target, &outcome); err != nil {
		outcome.Error = err
		logger.Debug("target failed", logging.FieldError, err)
		return outcome
	}

	logger.Debug("target processed",
		logging.FieldLanguage, outcome.Language,
		logging.FieldDeps, len(outcome.Deps),
		logging.FieldWritten, outcome.Write.Written,
	)
	return outcome
}

func (r *Runner) process(ctx context.Context, target config.Target, outcome *TargetOutcome) error {
	cfg := r.Config

	snap, err := fsutil.ReadSnapshot(ctx, target.Entry)
	if err != nil {
		return err
	}
	source := string(snap.Content)
	outcome.Original = source

	profile, err := generate.ResolveProfile(cfg.Language, target.Entry, snap.Content, cfg.Templates)
	if err != nil {
		return err
	}
	outcome.Language = profile.Language

	names, err := discovery.Discover(ctx, target)
	if err != nil {
		return fmt.Errorf("discover dependencies: %w", err)
	}
	outcome.Discovered = len(names)

	filter := discovery.Chain(
		discovery.ExcludeNames(discovery.SysrootCrates...),
		discovery.ExcludeNames(cfg.Exclude...),
		discovery.NotExportedIn(generate.StripBlock(source, profile), profile.ExportPattern),
	)
	block := generate.NewBlock(cfg.ModuleName, filter(names))
	outcome.Deps = block.Deps

	rendered, err := generate.Render(profile, block)
	if err != nil {
		return err
	}

	sugg, err := generate.Suggest(target.Entry, source, rendered, profile, cfg.Anchor)
	if err != nil {
		return err
	}
	outcome.Suggestions = []suggest.Suggestion{sugg}

	patched, err := patch.Apply(source, outcome.Suggestions, patch.WithFileName(target.Entry))
	if err != nil {
		return fmt.Errorf("apply patch: %w", err)
	}
	outcome.Patched = patched
	outcome.Diff = patch.GenerateDiff(target.DisplayName(), source, patched)

	if !cfg.Write {
		return nil
	}

	outcome.Write, err = fsutil.WritePatched(ctx, snap, []byte(patched), fsutil.WriteOptions{
		Backup: cfg.BackupsEnabled(),
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", target.Entry, err)
	}

	return nil
}

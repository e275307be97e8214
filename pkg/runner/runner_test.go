package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/fsutil"
	"github.com/yaklabco/depexport/pkg/runner"
)

const docModel = `{
  "format_version": 30,
  "external_crates": {
    "1": {"name": "std"},
    "2": {"name": "serde"},
    "3": {"name": "anyhow"},
    "4": {"name": "core"}
  }
}`

const libSource = "use serde::Serialize;\n\npub fn f() {}\n"

// newCrate lays out a minimal crate and returns its target, relative to dir.
func newCrate(t *testing.T, dir, name, source string) config.Target {
	t.Helper()

	manifest := "[package]\nname = \"" + name + "\"\n"
	files := map[string]string{
		filepath.Join(name, "Cargo.toml"):                  manifest,
		filepath.Join(name, "target", "doc", name+".json"): docModel,
		filepath.Join(name, "src", "lib.rs"):               source,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return config.Target{
		Entry:    filepath.Join(name, "src", "lib.rs"),
		Manifest: filepath.Join(name, "Cargo.toml"),
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := newCrate(t, dir, "alpha", libSource)

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Targets:    []config.Target{target},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)

	outcome := result.Targets[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, "rust", outcome.Language)
	assert.Equal(t, 4, outcome.Discovered)
	assert.Equal(t, []string{"anyhow", "serde"}, outcome.Deps)
	assert.Equal(t,
		"// depexport:begin\n"+
			"pub mod deps {\n"+
			"    pub use anyhow;\n"+
			"    pub use serde;\n"+
			"}\n"+
			"// depexport:end\n"+
			"\n"+libSource,
		outcome.Patched)
	assert.True(t, outcome.Changed())
	assert.False(t, outcome.Write.Written)

	// Dry run leaves the file alone.
	got, err := os.ReadFile(filepath.Join(dir, target.Entry))
	require.NoError(t, err)
	assert.Equal(t, libSource, string(got))

	assert.Equal(t, runner.Stats{Targets: 1, TargetsChanged: 1, DepsExported: 2}, result.Stats)
}

func TestRun_WriteIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := newCrate(t, dir, "beta", libSource)

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Exclude = []string{"anyhow"}
	run := runner.New(cfg)
	opts := runner.Options{Targets: []config.Target{target}, WorkingDir: dir}

	first, err := run.Run(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, first.Targets[0].Error)
	assert.Equal(t, []string{"serde"}, first.Targets[0].Deps)
	assert.True(t, first.Targets[0].Write.Written)
	assert.Equal(t, 1, first.Stats.FilesWritten)

	entry := filepath.Join(dir, target.Entry)
	backup, err := os.ReadFile(entry + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, libSource, string(backup))

	second, err := run.Run(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, second.Targets[0].Error)
	assert.False(t, second.Targets[0].Changed())
	assert.Nil(t, second.Targets[0].Diff)
	assert.Equal(t, runner.Stats{Targets: 1, TargetsUnchanged: 1, DepsExported: 1}, second.Stats)
}

func TestRun_HandWrittenExportsAreSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := newCrate(t, dir, "gamma", "pub use serde;\n")

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Targets:    []config.Target{target},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"anyhow"}, result.Targets[0].Deps)
}

func TestRun_RegeneratesBlockInLongFile(t *testing.T) {
	t.Parallel()

	var body strings.Builder
	for i := range 12 {
		fmt.Fprintf(&body, "fn f%d() {}\n", i)
	}
	stale := "// depexport:begin\npub mod deps {\n    pub use serde;\n}\n// depexport:end\n"
	source := body.String() + "\n" + stale

	dir := t.TempDir()
	target := newCrate(t, dir, "theta", source)

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Targets:    []config.Target{target},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	outcome := result.Targets[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, body.String()+"\n"+
		"// depexport:begin\npub mod deps {\n    pub use anyhow;\n    pub use serde;\n}\n// depexport:end\n",
		outcome.Patched)

	require.NotNil(t, outcome.Diff)
	assert.Equal(t, 1, outcome.Diff.Additions)
	assert.Equal(t, 0, outcome.Diff.Deletions)
	require.Len(t, outcome.Diff.Hunks, 1)
	assert.Equal(t, "@@ -13,6 +13,7 @@", outcome.Diff.Hunks[0].Header())
	assert.Contains(t, outcome.Diff.String(), " pub mod deps {\n+    pub use anyhow;\n     pub use serde;\n")
}

func TestRun_FailuresAreRecordedPerTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := newCrate(t, dir, "delta", libSource)
	missing := config.Target{Entry: "missing/src/lib.rs", Manifest: "missing/Cargo.toml"}
	noSource := newCrate(t, dir, "epsilon", libSource)
	noSource.Manifest = ""

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Targets:    []config.Target{missing, good, noSource},
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)
	require.Len(t, result.Targets, 3)

	assert.ErrorIs(t, result.Targets[0].Error, fsutil.ErrNotFound)
	assert.NoError(t, result.Targets[1].Error)
	assert.Error(t, result.Targets[2].Error)

	assert.Equal(t, filepath.Join(dir, good.Entry), result.Targets[1].Target.Entry)
	assert.True(t, result.HasErrors())
	assert.Equal(t, 2, result.Stats.TargetsErrored)
	assert.Equal(t, 1, result.Stats.TargetsChanged)
}

func TestRun_ConfigTargets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Targets = []config.Target{newCrate(t, dir, "zeta", libSource)}
	cfg.Language = "rust"

	result, err := runner.New(cfg).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)
	assert.NoError(t, result.Targets[0].Error)
}

func TestRun_NoTargets(t *testing.T) {
	t.Parallel()

	_, err := runner.New(nil).Run(context.Background(), runner.Options{})
	assert.ErrorIs(t, err, runner.ErrNoTargets)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := newCrate(t, dir, "eta", libSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(nil).Run(ctx, runner.Options{
		Targets:    []config.Target{target},
		WorkingDir: dir,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

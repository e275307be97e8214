package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/depexport/internal/ui/pretty"
	"github.com/yaklabco/depexport/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "up to date",
			stats: runner.Stats{Targets: 3, TargetsUnchanged: 3},
			want:  "All targets up to date (3 targets checked)\n",
		},
		{
			name:  "single target",
			stats: runner.Stats{Targets: 1, TargetsUnchanged: 1},
			want:  "All targets up to date (1 target checked)\n",
		},
		{
			name:  "changed and failed",
			stats: runner.Stats{Targets: 3, TargetsChanged: 2, TargetsErrored: 1},
			want:  "2 of 3 targets out of date, 1 failed\n",
		},
		{
			name:  "written",
			stats: runner.Stats{Targets: 1, TargetsChanged: 1, FilesWritten: 1},
			want:  "1 of 1 target out of date, 1 file written\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{Targets: 4, TargetsChanged: 2, TargetsErrored: 1, DepsExported: 7})
	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Targets:           4")
	assert.Contains(t, result, "Out of date:       2")
	assert.Contains(t, result, "Failed:            1")
	assert.Contains(t, result, "Deps exported:     7")
	assert.Contains(t, result, "Generation failed")

	result = styles.FormatSummary(runner.Stats{Targets: 1, TargetsChanged: 1, FilesWritten: 1})
	assert.Contains(t, result, "Files written:     1")
	assert.Contains(t, result, "Re-export blocks up to date")
	assert.NotContains(t, result, "Failed:")

	result = styles.FormatSummary(runner.Stats{Targets: 1, TargetsChanged: 1})
	assert.Contains(t, result, "Re-export blocks out of date")
}

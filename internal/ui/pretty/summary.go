package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/depexport/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordTarget          = "target"
	wordTargets         = "targets"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 of 3 targets out of date, 1 failed, 2 files written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.TargetsChanged == 0 && stats.TargetsErrored == 0 {
		return s.Success.Render("All targets up to date") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.Targets, plural(stats.Targets, wordTarget, wordTargets))) +
			"\n"
	}

	var parts []string

	if stats.TargetsChanged > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d of %d %s out of date",
			stats.TargetsChanged, stats.Targets, plural(stats.Targets, wordTarget, wordTargets))))
	}
	if stats.TargetsErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.TargetsErrored)))
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s written",
			stats.FilesWritten, plural(stats.FilesWritten, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Targets:           " +
		s.SummaryValue.Render(strconv.Itoa(stats.Targets)) + "\n")

	if stats.TargetsChanged > 0 {
		builder.WriteString("  Out of date:       " +
			s.Warning.Render(strconv.Itoa(stats.TargetsChanged)) + "\n")
	}
	if stats.TargetsErrored > 0 {
		builder.WriteString("  Failed:            " +
			s.Failure.Render(strconv.Itoa(stats.TargetsErrored)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	builder.WriteString("  Deps exported:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.DepsExported)) + "\n")

	builder.WriteString("\n")

	switch {
	case stats.TargetsErrored > 0:
		builder.WriteString(s.Failure.Render("Generation failed"))
	case stats.TargetsChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Re-export blocks out of date"))
	default:
		builder.WriteString(s.Success.Render("Re-export blocks up to date"))
	}
	builder.WriteString("\n")

	return builder.String()
}

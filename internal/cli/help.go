package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/depexport/internal/ui/pretty"
)

// HelpFormatter renders Cobra help and usage with lipgloss styles.
type HelpFormatter struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		heading: styles.Warning,
		command: styles.Bold,
		flag:    styles.Dep,
		dim:     styles.Dim,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":   h.heading.Render,
		"command":   h.command.Render,
		"dim":       h.dim.Render,
		"flags":     h.renderFlags,
		"rpad":      rpad,
		"trimRight": func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

// renderFlags styles the flag names in a pflag usage block and dims
// their value type. Descriptions are left alone.
func (h *HelpFormatter) renderFlags(set interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.renderFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) renderFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	// pflag separates the flag column from the description with 2+ spaces.
	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return line
	}
	names, desc := trimmed[:idx], strings.TrimLeft(trimmed[idx:], " ")

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// ApplyToCommand installs the styled templates on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

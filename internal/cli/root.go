// Package cli provides the Cobra command structure for depexport.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/depexport/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root depexport command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "depexport",
		Short: "Generate re-export blocks for a project's public dependencies",
		Long: `depexport keeps a generated block of dependency re-exports at the top
(or bottom) of a project's entry file.

Dependencies are discovered from a rustdoc JSON documentation model, a
Cargo.toml that locates one, or a go.mod. The block is rendered from a
per-language template, wrapped in marker comments, and applied as an
all-or-nothing patch: a stale block is replaced, a missing one inserted,
and nothing is written unless every edit applies cleanly.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

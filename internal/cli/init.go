package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/depexport/internal/configloader"
	"github.com/yaklabco/depexport/internal/logging"
	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/generate"
)

const defaultConfigFile = ".depexport.yml"

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a depexport configuration file",
		Long: `Create a .depexport.yml configuration file in the current directory.

Examples:
  depexport init                       Create a minimal .depexport.yml
  depexport init --full                Also document every option and block template
  depexport init --output tools.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "include every option and the built-in templates")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && flags.force {
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:      flags.full,
		Templates: generate.DefaultTemplates(),
	})

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", flags.output)
	logger.Debug("created configuration file", logging.FieldPath, absPath)

	return nil
}

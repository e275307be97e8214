package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/depexport/internal/configloader"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables depexport reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			out := cmd.OutOrStdout()

			width := 0
			for name := range vars {
				width = max(width, len(name))
			}

			for _, name := range slices.Sorted(maps.Keys(vars)) {
				if _, err := fmt.Fprintf(out, "%-*s  %s\n", width, name, vars[name]); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
}

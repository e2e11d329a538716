package cli

import (
	"fmt"

	"github.com/glorpus-work/suitehooks/internal/logger"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate MANIFEST",
		Short: "Check a manifest without running it",
		Long: `Load a manifest, check it and register every hook it declares, without
running any hook or test. Script syntax errors surface when a script runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, suites, err := loadSuites(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tests := 0
			for _, name := range suites.Order {
				tests += len(suites.Tests[name])
			}
			logger.Success("Manifest is valid", logger.Fields{"path": args[0]})
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d classes, %d tests\n", args[0], len(suites.Order), tests)
			return nil
		},
	}

	return cmd
}

package cli

import (
	"fmt"

	"github.com/glorpus-work/suitehooks/pkg/hooks"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// NewTemplateCmd creates the template command.
func NewTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template PHASE [PERIOD]",
		Short: "Print a starter hook script",
		Long: `Print a starter Tengo script for a hook slot.

PHASE is before or after; PERIOD is each (default) or all. Save the output as
<phase>-<period>.tengo in a class's hooks directory to have it picked up.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			phase, err := lifecycle.ParsePhase(args[0])
			if err != nil {
				return err
			}
			var period lifecycle.Period
			if len(args) > 1 {
				if period, err = lifecycle.ParsePeriod(args[1]); err != nil {
					return err
				}
			} else {
				period = lifecycle.Each
			}

			fmt.Fprintln(cmd.OutOrStdout(), hooks.HookTemplate(lifecycle.Slot{Phase: phase, Period: period}))
			return nil
		},
	}

	cmd.Example = `  # Per-test setup
  suitehooks template before > hooks/Base/before-each.tengo

  # Suite teardown
  suitehooks template after all`

	return cmd
}

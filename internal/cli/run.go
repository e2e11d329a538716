package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/glorpus-work/suitehooks/pkg/config"
	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/glorpus-work/suitehooks/pkg/runner"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var className string

	cmd := &cobra.Command{
		Use:   "run MANIFEST",
		Short: "Run the suites declared in a manifest",
		Long: `Run every class of a manifest in declaration order, or a single class with
--class. For each class the before(all) hooks run once, then every test runs
on a fresh instance between its before(each) and after(each) hooks, and the
after(all) hooks run last. Parent hooks always run before child hooks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, suites, err := loadSuites(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			order := suites.Order
			if className != "" {
				if _, err := suites.Registry.Class(className); err != nil {
					return err
				}
				order = []string{className}
			}

			return runSuites(cmd, suites, order)
		},
	}

	cmd.Flags().StringVarP(&className, "class", "c", "", "Run only this class")

	cmd.Example = `  # Run every suite
  suitehooks run suites.yaml

  # Run a single class with debug logging
  suitehooks run -v --class Child suites.yaml`

	return cmd
}

// runSuites runs the classes in order. Once the context is done no further
// class is started.
func runSuites(cmd *cobra.Command, suites *config.Suites, order []string) error {
	ctx := cmd.Context()
	r := runner.New(nil)
	failed := 0
	for i, name := range order {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "stopped before %d of %d suites", len(order)-i, len(order))
		}

		class, err := suites.Registry.Class(name)
		if err != nil {
			return err
		}

		summary, err := r.Run(ctx, class, suites.Tests[name])
		printSummary(cmd, summary)
		if err != nil {
			printSuiteError(cmd, err)
		}
		if !summary.OK() {
			failed++
		}
	}

	if failed > 0 {
		return errors.Wrapf(errors.ErrTestsFailed, "%d of %d suites failed", failed, len(order))
	}
	return nil
}

func printSummary(cmd *cobra.Command, summary *runner.Summary) {
	out := cmd.OutOrStdout()
	for _, res := range summary.Results {
		if res.Passed() {
			fmt.Fprintf(out, "ok   %s/%s (%s)\n", res.Class, res.Test, res.Duration)
			continue
		}
		fmt.Fprintf(out, "FAIL %s/%s: %v\n", res.Class, res.Test, res.Err)
	}
	fmt.Fprintf(out, "%s: %d passed, %d failed\n", summary.Class, summary.Passed, summary.Failed)
}

// printSuiteError writes the full diagnostic of suite hook failures.
func printSuiteError(cmd *cobra.Command, err error) {
	var suiteErr *lifecycle.SuiteHookError
	if stderrors.As(err, &suiteErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%+v\n", suiteErr)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

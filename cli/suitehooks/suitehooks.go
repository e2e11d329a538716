package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/suitehooks/internal/cli"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	logFormat    string
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suitehooks",
		Short: "Run test suites with inherited lifecycle hooks",
		Long: `suitehooks runs test suites declared in a YAML manifest:
- Classes: test-case classes with parents
- Hooks: before/after hooks per test (each) or per suite (all), parents first
- Scripts: hooks and tests written in Tengo, inline, in files or in bundles`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (json, yaml, table)")

	// Set up CLI pkg variables
	cli.Verbose = &verbose
	cli.LogFormat = &logFormat
	cli.OutputFormat = &outputFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewRunCmd(),
		cli.NewHooksCmd(),
		cli.NewValidateCmd(),
		cli.NewTemplateCmd(),
		cli.NewBundleCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}

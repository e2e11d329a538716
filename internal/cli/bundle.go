package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/glorpus-work/suitehooks/pkg/bundle"
	"github.com/glorpus-work/suitehooks/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Number of arguments expected by the pack and unpack commands.
const bundleCommandArgs = 2

// NewBundleCmd creates the bundle command with subcommands.
func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage hook bundles",
		Long: `Pack hook directories into .tar.gz bundles and inspect them. A bundle holds
<class>/<phase>-<period>.tengo scripts and is referenced by the manifest's
settings.bundle.`,
	}

	cmd.AddCommand(
		newBundlePackCmd(),
		newBundleListCmd(),
		newBundleUnpackCmd(),
	)

	return cmd
}

func newBundlePackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack HOOKS_DIR BUNDLE",
		Short: "Pack a hooks directory into a bundle",
		Args:  cobra.ExactArgs(bundleCommandArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			packed, err := bundle.NewManager().Pack(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Packed %d hook scripts into %s\n", packed, args[1])
			return nil
		},
	}

	return cmd
}

func newBundleListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list BUNDLE",
		Short: "List the hook scripts in a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := bundle.NewManager().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), entries, outputFormat())
		},
	}

	return cmd
}

func newBundleUnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack BUNDLE DIR",
		Short: "Extract the hook scripts of a bundle",
		Args:  cobra.ExactArgs(bundleCommandArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := bundle.NewManager().Unpack(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d hook scripts to %s\n", written, args[1])
			return nil
		},
	}

	return cmd
}

func writeEntries(w io.Writer, entries []bundle.Entry, format string) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode bundle entries: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode bundle entries: %w", err)
		}
		return enc.Close()
	case OutputTable:
		tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
		_, _ = fmt.Fprintln(tabWriter, "CLASS\tSLOT\tFILE\tSIZE")
		_, _ = fmt.Fprintln(tabWriter, "-----\t----\t----\t----")
		for _, entry := range entries {
			_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%d\n", entry.Class, entry.Slot, entry.File, entry.Size)
		}
		return tabWriter.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

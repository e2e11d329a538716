package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/glorpus-work/suitehooks/pkg/config"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// hookRow is one gathered callback as listed by the hooks command.
type hookRow struct {
	Slot  string `json:"slot" yaml:"slot"`
	Order int    `json:"order" yaml:"order"`
	Class string `json:"class" yaml:"class"`
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// NewHooksCmd creates the hooks command.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks MANIFEST CLASS",
		Short: "Show the hooks a class runs, in order",
		Long: `Show the hooks gathered for a class in all four slots, in the order they
run: root ancestor first, each class in registration order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, suites, err := loadSuites(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			class, err := suites.Registry.Class(args[1])
			if err != nil {
				return err
			}

			rows, err := gatherRows(class)
			if err != nil {
				return err
			}
			return writeRows(cmd.OutOrStdout(), rows, outputFormat())
		},
	}

	return cmd
}

func gatherRows(class *lifecycle.Class) ([]hookRow, error) {
	rows := []hookRow{}
	for _, slot := range lifecycle.Slots() {
		callbacks, err := class.Gather(slot.Phase, slot.Period)
		if err != nil {
			return nil, err
		}
		for i, cb := range callbacks {
			rows = append(rows, hookRow{
				Slot:  slot.String(),
				Order: i + 1,
				Class: cb.Class,
				Index: cb.Index,
				Name:  cb.Name(),
			})
		}
	}
	return rows, nil
}

func writeRows(w io.Writer, rows []hookRow, format string) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode hooks: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode hooks: %w", err)
		}
		return enc.Close()
	case OutputTable:
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "No hooks registered")
			return err
		}
		tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
		_, _ = fmt.Fprintln(tabWriter, "SLOT\tORDER\tCLASS\tHOOK")
		_, _ = fmt.Fprintln(tabWriter, "----\t-----\t-----\t----")
		for _, row := range rows {
			_, _ = fmt.Fprintf(tabWriter, "%s\t%d\t%s\t%s\n", row.Slot, row.Order, row.Class, row.Name)
		}
		return tabWriter.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/export"
)

func newExportCommand(dir *string) *cobra.Command {
	var out string
	var sources []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir)
			if err != nil {
				return err
			}
			return runExport(cmd, p, out, sources)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "only export entries from this source file (repeatable)")

	return cmd
}

func runExport(cmd *cobra.Command, p *project, out string, sources []string) error {
	txns, err := p.ledger.Load()
	if err != nil {
		return err
	}
	txns = export.FilterBySource(txns, sources)

	w := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.WriteCSV(w, txns); err != nil {
		return err
	}

	if out != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(txns), out)
	}
	return nil
}

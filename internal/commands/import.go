package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/importer"
)

func newImportCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a CSV or XLSX sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir)
			if err != nil {
				return err
			}
			return runImport(cmd, p, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, p *project, path string) error {
	reader, err := importer.ForFile(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sourceFile := filepath.Base(path)
	result, err := importer.Import(f, reader, sourceFile)
	if err != nil {
		return err
	}

	if len(result.Transactions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "File processed, but no transactions were found.")
		return nil
	}

	if err := p.ledger.Append(result.Transactions); err != nil {
		return err
	}

	p.log.Info().
		Str("file", sourceFile).
		Int("parsed", result.Parsed).
		Int("errored", result.Errored).
		Msg("import complete")
	p.audit("import", fmt.Sprintf("%s: %d rows, %d with errors", sourceFile, result.Parsed, result.Errored), "")

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d entries from %s (%d recorded with row errors)\n",
		result.Parsed, sourceFile, result.Errored)
	return nil
}

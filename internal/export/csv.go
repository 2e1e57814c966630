// Package export writes the ledger back out as CSV for spreadsheets
// and archival.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tallybook-dev/tallybook/internal/model"
)

var header = []string{"Date", "Description", "Account", "Debit", "Credit", "Source File"}

// WriteCSV writes transactions as CSV, header included. Amounts are
// written in their exact decimal form.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		row := []string{
			t.Date,
			t.Description,
			t.Account,
			t.Debit.String(),
			t.Credit.String(),
			t.SourceFile,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// FilterBySource keeps transactions whose SourceFile is in sources,
// preserving ledger order. An empty sources set keeps everything.
func FilterBySource(txns []model.Transaction, sources []string) []model.Transaction {
	if len(sources) == 0 {
		return txns
	}
	wanted := make(map[string]bool, len(sources))
	for _, s := range sources {
		wanted[s] = true
	}

	var filtered []model.Transaction
	for _, t := range txns {
		if wanted[t.SourceFile] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Sources returns the distinct source files in first-seen order.
func Sources(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, t := range txns {
		if !seen[t.SourceFile] {
			seen[t.SourceFile] = true
			sources = append(sources, t.SourceFile)
		}
	}
	return sources
}

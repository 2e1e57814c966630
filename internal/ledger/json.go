package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// transactionJSON is the on-disk shape of a ledger entry. Amounts are
// strings so decimals survive the round trip without float drift.
type transactionJSON struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Account     string   `json:"account"`
	Debit       string   `json:"debit"`
	Credit      string   `json:"credit"`
	Status      string   `json:"status"`
	Errors      []string `json:"errors"`
	SourceFile  string   `json:"source_file"`
}

func marshalTransaction(t model.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Account:     t.Account,
		Debit:       t.Debit.String(),
		Credit:      t.Credit.String(),
		Status:      string(t.Status),
		Errors:      append([]string{}, t.Errors...),
		SourceFile:  t.SourceFile,
	}
}

// unmarshalTransaction applies the historical defaults: generated ID,
// "Unclassified" account, "Manual" source, Valid status. Persisted
// status is advisory only; analysis recomputes it.
func unmarshalTransaction(j transactionJSON) (model.Transaction, error) {
	debit, err := parseAmount(j.Debit)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing debit %q: %w", j.Debit, err)
	}
	credit, err := parseAmount(j.Credit)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing credit %q: %w", j.Credit, err)
	}

	t := model.Transaction{
		ID:          j.ID,
		Date:        j.Date,
		Description: j.Description,
		Account:     j.Account,
		Debit:       debit,
		Credit:      credit,
		Status:      model.Status(j.Status),
		Errors:      j.Errors,
		SourceFile:  j.SourceFile,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Account == "" {
		t.Account = model.AccountUnclassified
	}
	if t.Status == "" {
		t.Status = model.StatusValid
	}
	if t.SourceFile == "" {
		t.SourceFile = model.SourceManual
	}
	return t, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Package ledger persists the transaction ledger as a JSON file and
// provides the mutation operations the command layer builds on.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// ErrNotFound is returned when a transaction ID is absent from the
// ledger.
var ErrNotFound = errors.New("transaction not found")

// Service reads and writes one ledger file.
type Service struct {
	path string
}

// NewService creates a Service over the given ledger file path.
func NewService(path string) *Service {
	return &Service{path: path}
}

// Load reads the ledger. A missing file is an empty ledger. Records
// that fail to decode are skipped so one bad entry cannot take the
// whole book down.
func (s *Service) Load() ([]model.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}

	var records []transactionJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}

	var txns []model.Transaction
	for _, rec := range records {
		t, err := unmarshalTransaction(rec)
		if err != nil {
			continue
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// Save writes the full ledger atomically (temp file + rename).
func (s *Service) Save(txns []model.Transaction) error {
	records := make([]transactionJSON, len(txns))
	for i, t := range txns {
		records[i] = marshalTransaction(t)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", s.path, err)
	}
	return nil
}

// AddParams holds the fields for a new manual entry.
type AddParams struct {
	Date        string
	Description string
	Account     string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	SourceFile  string
}

// Add appends one transaction with a fresh ID and saves. The status is
// left for analysis; empty account and source fall back to their
// placeholders.
func (s *Service) Add(params AddParams) (model.Transaction, error) {
	t := model.Transaction{
		ID:          uuid.NewString(),
		Date:        params.Date,
		Description: params.Description,
		Account:     params.Account,
		Debit:       params.Debit,
		Credit:      params.Credit,
		Status:      model.StatusValid,
		SourceFile:  params.SourceFile,
	}
	if t.Account == "" {
		t.Account = model.AccountUnclassified
	}
	if t.SourceFile == "" {
		t.SourceFile = model.SourceManual
	}

	txns, err := s.Load()
	if err != nil {
		return model.Transaction{}, err
	}
	txns = append(txns, t)
	if err := s.Save(txns); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// Append adds already-constructed transactions (e.g. an import batch)
// and saves.
func (s *Service) Append(batch []model.Transaction) error {
	if len(batch) == 0 {
		return nil
	}
	txns, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(txns, batch...))
}

// Replace swaps the stored transaction with the same ID (committing a
// correction). The ID is the stable key across edits.
func (s *Service) Replace(replacement model.Transaction) error {
	txns, err := s.Load()
	if err != nil {
		return err
	}
	for i, t := range txns {
		if t.ID == replacement.ID {
			txns[i] = replacement
			return s.Save(txns)
		}
	}
	return fmt.Errorf("replacing %s: %w", replacement.ID, ErrNotFound)
}

// Remove deletes the transaction with the given ID.
func (s *Service) Remove(id string) error {
	txns, err := s.Load()
	if err != nil {
		return err
	}
	for i, t := range txns {
		if t.ID == id {
			return s.Save(append(txns[:i], txns[i+1:]...))
		}
	}
	return fmt.Errorf("removing %s: %w", id, ErrNotFound)
}

// Clear empties the ledger.
func (s *Service) Clear() error {
	return s.Save(nil)
}

// Package importer turns tabular ledger sheets (CSV or XLSX) into
// transactions. Structural row problems become Error-status
// transactions; everything else is passed through for the analyzer to
// classify.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Reader extracts raw rows from one tabular file format.
type Reader interface {
	Rows(r io.Reader) ([][]string, error)
	Format() string
}

// ErrUnsupportedFormat is returned for file types no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ForFile picks a Reader by file extension.
func ForFile(name string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSVReader{}, nil
	case ".xlsx":
		return XLSXReader{}, nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

// Result summarizes one import batch.
type Result struct {
	Transactions []model.Transaction
	Parsed       int // structurally sound rows
	Errored      int // rows recorded as Error transactions
}

var requiredColumns = []string{"date", "description", "account", "debit", "credit"}

// columns maps required column names to their index in the sheet.
type columns map[string]int

// Import reads a sheet and converts its rows. The first row must name
// the required columns (any order, any case); blank rows are skipped.
func Import(r io.Reader, reader Reader, sourceFile string) (Result, error) {
	rows, err := reader.Rows(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", sourceFile, err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%s: file is empty", sourceFile)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", sourceFile, err)
	}

	var result Result
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-indexed, after the header
		if blankRow(row) {
			continue
		}

		t, ok := convertRow(row, cols, rowNum, sourceFile)
		if ok {
			result.Parsed++
		} else {
			result.Errored++
		}
		result.Transactions = append(result.Transactions, t)
	}
	return result, nil
}

// mapColumns resolves header names case-insensitively.
func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(columns, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s (file must include %s)",
			strings.Join(missing, ", "), strings.Join(requiredColumns, ", "))
	}
	return cols, nil
}

// convertRow builds one transaction. The second return is false when
// the row was recorded as a structural error.
func convertRow(row []string, cols columns, rowNum int, sourceFile string) (model.Transaction, bool) {
	cell := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	date, ok := cell("date")
	if !ok {
		date = "N/A"
	}
	for _, name := range requiredColumns {
		if _, present := cell(name); !present {
			return errorRow(rowNum, date, sourceFile,
				fmt.Sprintf("Row %d has insufficient columns.", rowNum)), false
		}
	}

	description, _ := cell("description")
	if description == "" {
		description = "No description"
	}
	account, _ := cell("account")
	if account == "" {
		account = model.AccountUnclassified
	}

	debitStr, _ := cell("debit")
	creditStr, _ := cell("credit")
	debit := ParseAmount(debitStr)
	credit := ParseAmount(creditStr)

	t := model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Account:     account,
		Debit:       debit,
		Credit:      credit,
		Status:      model.StatusValid,
		SourceFile:  sourceFile,
	}

	// A line with no amount on either side is meaningless; this is an
	// import-layer rule, not an analyzer rule.
	if debit.IsZero() && credit.IsZero() {
		t.Status = model.StatusError
		t.Errors = []string{"Debit and credit fields are both empty."}
		return t, false
	}

	return t, true
}

func errorRow(rowNum int, date, sourceFile, message string) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: "Row parsing error: insufficient columns",
		Account:     model.AccountUnclassified,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
		Status:      model.StatusError,
		Errors:      []string{message},
		SourceFile:  sourceFile,
	}
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseAmount parses a sheet amount forgivingly: thousands separators
// and surrounding space are stripped, and anything unparsable comes
// back as zero rather than failing the row.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

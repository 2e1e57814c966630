package model

import "github.com/shopspring/decimal"

// Status classifies a transaction after analysis.
type Status string

const (
	StatusValid   Status = "Valid"
	StatusAnomaly Status = "Anomaly"
	StatusError   Status = "Error"
)

// severity orders statuses: Error beats Anomaly beats Valid.
var severity = map[Status]int{
	StatusValid:   0,
	StatusAnomaly: 1,
	StatusError:   2,
}

// Worse returns the more severe of two statuses.
func Worse(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// SourceManual marks transactions entered by hand rather than imported.
const SourceManual = "Manual"

// AccountUnclassified is the placeholder for rows with no account name.
const AccountUnclassified = "Unclassified"

// Transaction is a single-line ledger entry. Exactly one of Debit/Credit
// is expected to be non-zero on a well-formed line, but the type permits
// any combination; validity of combinations is an analyzer rule.
type Transaction struct {
	ID          string
	Date        string // raw text, canonical form YYYY-MM-DD
	Description string
	Account     string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Status      Status
	Errors      []string
	SourceFile  string // "Manual" or the imported file's base name
}

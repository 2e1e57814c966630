// Package analyzer implements rules-based validation and anomaly
// detection over a ledger. Analysis is a pure transform: it never
// mutates its input and never trusts a pre-existing status.
package analyzer

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/chart"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// Rule messages. Error rules always produce the same text; the large
// transaction message renders the configured threshold.
const (
	msgInvalidDate      = "Invalid date format (must be YYYY-MM-DD)."
	msgNegativeAmount   = "Negative amounts are not allowed."
	msgDoubleSided      = "Both debit and credit are populated on a single line; one side must be zero."
	msgUnexpectedCredit = "Significant credit activity in a normal debit balance account (Asset/Expense)."
	msgUnexpectedDebit  = "Significant debit activity in a normal credit balance account (Liability/Equity/Revenue)."
)

// Config holds the anomaly thresholds.
type Config struct {
	// LargeTransaction flags any single side above this amount.
	LargeTransaction decimal.Decimal
	// OppositeEntry flags activity above this amount on the side
	// opposite an account's normal balance.
	OppositeEntry decimal.Decimal
}

// DefaultConfig returns the standard thresholds: 50,000.00 for large
// transactions and 100.00 for opposite-side entries.
func DefaultConfig() Config {
	return Config{
		LargeTransaction: decimal.New(5000000, -2),
		OppositeEntry:    decimal.New(10000, -2),
	}
}

// rule is one entry in the ordered rule table. gate decides, from the
// status accumulated so far, whether the rule is evaluated at all;
// match reports whether it fires. Matched messages accumulate in table
// order and the final status is the worst severity reached.
type rule struct {
	severity model.Status
	gate     func(model.Status) bool
	match    func(model.Transaction) (string, bool)
}

func always(model.Status) bool { return true }

// Analyzer applies the rule table to transactions.
type Analyzer struct {
	rules []rule
}

// New creates an Analyzer over a chart of accounts with the given
// thresholds.
func New(accounts *chart.Chart, cfg Config) *Analyzer {
	largeMsg := "Large transaction detected (exceeds $" + groupedFixed(cfg.LargeTransaction) + ")."

	return &Analyzer{rules: []rule{
		{
			severity: model.StatusError,
			gate:     always,
			match: func(t model.Transaction) (string, bool) {
				return msgInvalidDate, !ValidDate(t.Date)
			},
		},
		{
			severity: model.StatusError,
			gate:     always,
			match: func(t model.Transaction) (string, bool) {
				return msgNegativeAmount, t.Debit.IsNegative() || t.Credit.IsNegative()
			},
		},
		{
			severity: model.StatusError,
			gate:     always,
			match: func(t model.Transaction) (string, bool) {
				return msgDoubleSided, t.Debit.IsPositive() && t.Credit.IsPositive()
			},
		},
		{
			severity: model.StatusAnomaly,
			gate:     func(s model.Status) bool { return s != model.StatusError },
			match: func(t model.Transaction) (string, bool) {
				return largeMsg, t.Debit.GreaterThan(cfg.LargeTransaction) || t.Credit.GreaterThan(cfg.LargeTransaction)
			},
		},
		{
			severity: model.StatusAnomaly,
			gate:     func(s model.Status) bool { return s == model.StatusValid },
			match: func(t model.Transaction) (string, bool) {
				switch {
				case accounts.DebitNormal(t.Account):
					return msgUnexpectedCredit, t.Credit.GreaterThan(cfg.OppositeEntry)
				case accounts.CreditNormal(t.Account):
					return msgUnexpectedDebit, t.Debit.GreaterThan(cfg.OppositeEntry)
				default:
					return "", false
				}
			},
		},
	}}
}

// Analyze classifies every transaction, returning a new slice of the
// same length and order. Status and Errors are recomputed from scratch
// for each element; all other fields are copied through.
func (a *Analyzer) Analyze(txns []model.Transaction) []model.Transaction {
	analyzed := make([]model.Transaction, len(txns))
	for i, t := range txns {
		analyzed[i] = a.analyzeOne(t)
	}
	return analyzed
}

func (a *Analyzer) analyzeOne(t model.Transaction) model.Transaction {
	status := model.StatusValid
	var messages []string

	for _, r := range a.rules {
		if !r.gate(status) {
			continue
		}
		if msg, matched := r.match(t); matched {
			messages = append(messages, msg)
			status = model.Worse(status, r.severity)
		}
	}

	out := t
	out.Status = status
	out.Errors = messages
	return out
}

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a real calendar date in exactly the
// YYYY-MM-DD form: four-two-two digit groups, dash separators, and a
// day that exists in its month.
func ValidDate(s string) bool {
	if !dateRE.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// groupedFixed renders a decimal with two fixed places and comma
// thousands separators, e.g. 50000 -> "50,000.00".
func groupedFixed(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}

	out := string(grouped) + frac
	if neg {
		out = "-" + out
	}
	return out
}

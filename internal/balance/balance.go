// Package balance folds an analyzed ledger into per-account balances
// and the summary aggregates shown on statements.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/analyzer"
	"github.com/tallybook-dev/tallybook/internal/chart"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// Aggregates are the statement totals, derived from per-account
// balances rather than raw transactions.
type Aggregates struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	NetIncome        decimal.Decimal
}

// Map returns the aggregates under their display labels.
func (a Aggregates) Map() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Total Assets":      a.TotalAssets,
		"Total Liabilities": a.TotalLiabilities,
		"Total Equity":      a.TotalEquity,
		"Net Income":        a.NetIncome,
	}
}

// Report is the result of a balance calculation. Balances omits
// accounts whose balance is exactly zero; Aggregates is always
// populated, zero or negative values included.
type Report struct {
	Balances   map[string]decimal.Decimal
	Aggregates Aggregates
}

// Balance returns the named account's balance; accounts absent from
// the report (compacted or never seen) are zero.
func (r Report) Balance(name string) decimal.Decimal {
	if b, ok := r.Balances[name]; ok {
		return b
	}
	return decimal.Zero
}

// Calculator derives reports from a ledger. It re-analyzes every
// ledger it is handed, so a stale persisted status never leaks into
// the totals.
type Calculator struct {
	accounts *chart.Chart
	analyzer *analyzer.Analyzer
}

// NewCalculator creates a Calculator over a chart of accounts.
func NewCalculator(accounts *chart.Chart, a *analyzer.Analyzer) *Calculator {
	return &Calculator{accounts: accounts, analyzer: a}
}

// Calculate runs the analyzer over the ledger and folds every
// non-Error transaction into its account's balance per the account's
// normal side. Unclassified accounts carry net activity
// (debit minus credit).
func (c *Calculator) Calculate(txns []model.Transaction) Report {
	analyzed := c.analyzer.Analyze(txns)

	// Seed zeros for every chart account and every account mentioned
	// in the ledger, so a zero-activity account still has an entry in
	// the working set before compaction.
	balances := make(map[string]decimal.Decimal, len(c.accounts.All())+len(txns))
	for _, a := range c.accounts.All() {
		balances[a.Name] = decimal.Zero
	}
	for _, t := range txns {
		if _, ok := balances[t.Account]; !ok {
			balances[t.Account] = decimal.Zero
		}
	}

	for _, t := range analyzed {
		if t.Status == model.StatusError {
			continue
		}
		if c.accounts.CreditNormal(t.Account) {
			balances[t.Account] = balances[t.Account].Add(t.Credit.Sub(t.Debit))
		} else {
			balances[t.Account] = balances[t.Account].Add(t.Debit.Sub(t.Credit))
		}
	}

	agg := Aggregates{
		TotalAssets:      c.sumByType(balances, model.AccountTypeAsset),
		TotalLiabilities: c.sumByType(balances, model.AccountTypeLiability),
		TotalEquity:      c.sumByType(balances, model.AccountTypeEquity),
	}
	revenue := c.sumByType(balances, model.AccountTypeRevenue)
	expenses := c.sumByType(balances, model.AccountTypeExpense)
	agg.NetIncome = revenue.Sub(expenses)

	compacted := make(map[string]decimal.Decimal, len(balances))
	for name, b := range balances {
		if !b.IsZero() {
			compacted[name] = b
		}
	}

	return Report{Balances: compacted, Aggregates: agg}
}

// Simulate recomputes a report over a copy of the ledger with the
// transaction matching replacement's ID swapped out. The caller's
// ledger is never modified; an unknown ID leaves the copy unchanged.
func (c *Calculator) Simulate(txns []model.Transaction, replacement model.Transaction) Report {
	working := make([]model.Transaction, len(txns))
	copy(working, txns)
	for i, t := range working {
		if t.ID == replacement.ID {
			working[i] = replacement
			break
		}
	}
	return c.Calculate(working)
}

func (c *Calculator) sumByType(balances map[string]decimal.Decimal, accountType model.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, a := range c.accounts.ByType(accountType) {
		total = total.Add(balances[a.Name])
	}
	return total
}

package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/analyzer"
	"github.com/tallybook-dev/tallybook/internal/chart"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newCalculator() *Calculator {
	c := chart.Default()
	return NewCalculator(c, analyzer.New(c, analyzer.DefaultConfig()))
}

func txn(id, date, account, debit, credit string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        date,
		Description: "test entry",
		Account:     account,
		Debit:       dec(debit),
		Credit:      dec(credit),
		SourceFile:  model.SourceManual,
	}
}

func TestCalculateScenario(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Cash", "500", "0"),
		txn("t2", "2024-01-15", "Revenue", "0", "500"),
	})

	assert.True(t, report.Balance("Cash").Equal(dec("500")))
	assert.True(t, report.Balance("Revenue").Equal(dec("500")))
	assert.True(t, report.Aggregates.TotalAssets.Equal(dec("500")))
	assert.True(t, report.Aggregates.NetIncome.Equal(dec("500")))
	assert.True(t, report.Aggregates.TotalLiabilities.IsZero())
	assert.True(t, report.Aggregates.TotalEquity.IsZero())
}

func TestErrorRowsExcluded(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-13-01", "Cash", "10", "0"),
	})

	assert.Empty(t, report.Balances)
	assert.True(t, report.Balance("Cash").IsZero())
	assert.True(t, report.Aggregates.TotalAssets.IsZero())
}

func TestAnomalyRowsIncluded(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Cash", "60000", "0"), // large, still counted
	})
	assert.True(t, report.Balance("Cash").Equal(dec("60000")))
}

func TestNormalBalanceSigns(t *testing.T) {
	c := newCalculator()

	// A debit increases a debit-normal account...
	asset := c.Calculate([]model.Transaction{txn("t1", "2024-01-15", "Cash", "100", "0")})
	assert.True(t, asset.Balance("Cash").Equal(dec("100")))

	// ...and decreases a credit-normal one.
	liability := c.Calculate([]model.Transaction{txn("t1", "2024-01-15", "Accounts Payable", "100", "0")})
	assert.True(t, liability.Balance("Accounts Payable").Equal(dec("-100")))
}

func TestUnclassifiedNetActivity(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Petty Cash Box", "80", "0"),
		txn("t2", "2024-01-16", "Petty Cash Box", "0", "30"),
	})
	assert.True(t, report.Balance("Petty Cash Box").Equal(dec("50")))
	// Unclassified accounts join no aggregate.
	assert.True(t, report.Aggregates.TotalAssets.IsZero())
}

func TestZeroBalanceCompaction(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Cash", "250", "0"),
		txn("t2", "2024-01-20", "Cash", "0", "250"),
	})

	_, present := report.Balances["Cash"]
	assert.False(t, present)
	assert.True(t, report.Balance("Cash").IsZero())
}

func TestAggregateIdentity(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Revenue", "0", "1200.50"),
		txn("t2", "2024-01-16", "Salaries", "700.25", "0"),
		txn("t3", "2024-01-17", "Rent Expense", "300", "0"),
		txn("t4", "2024-01-18", "Revenue", "50", "0"), // refund-style debit
	})

	revenue := report.Balance("Revenue")
	expenses := report.Balance("Salaries").Add(report.Balance("Rent Expense"))
	assert.True(t, report.Aggregates.NetIncome.Equal(revenue.Sub(expenses)))
	assert.True(t, report.Aggregates.NetIncome.Equal(dec("150.25")))
}

func TestCalculateIgnoresPersistedStatus(t *testing.T) {
	stale := txn("t1", "2024-01-15", "Cash", "500", "0")
	stale.Status = model.StatusError
	stale.Errors = []string{"stale"}

	report := newCalculator().Calculate([]model.Transaction{stale})
	assert.True(t, report.Balance("Cash").Equal(dec("500")))
}

func TestCalculateDeterministic(t *testing.T) {
	ledger := []model.Transaction{
		txn("t1", "2024-01-15", "Cash", "123.45", "0"),
		txn("t2", "2024-01-16", "Revenue", "0", "123.45"),
	}
	c := newCalculator()
	first := c.Calculate(ledger)
	second := c.Calculate(ledger)
	assert.Equal(t, first, second)
}

func TestSimulate(t *testing.T) {
	c := newCalculator()
	ledger := []model.Transaction{
		txn("t1", "2024-13-01", "Cash", "500", "0"), // bad date, excluded
		txn("t2", "2024-01-15", "Revenue", "0", "500"),
	}

	base := c.Calculate(ledger)
	assert.True(t, base.Balance("Cash").IsZero())

	fixed := ledger[0]
	fixed.Date = "2024-01-15"
	simulated := c.Simulate(ledger, fixed)
	assert.True(t, simulated.Balance("Cash").Equal(dec("500")))

	// The caller's ledger is untouched.
	assert.Equal(t, "2024-13-01", ledger[0].Date)
	again := c.Calculate(ledger)
	assert.Equal(t, base, again)
}

func TestSimulateUnknownID(t *testing.T) {
	c := newCalculator()
	ledger := []model.Transaction{txn("t1", "2024-01-15", "Cash", "500", "0")}

	ghost := txn("missing", "2024-01-15", "Cash", "999", "0")
	report := c.Simulate(ledger, ghost)
	assert.True(t, report.Balance("Cash").Equal(dec("500")))
}

func TestAggregatesMap(t *testing.T) {
	report := newCalculator().Calculate([]model.Transaction{
		txn("t1", "2024-01-15", "Cash", "500", "0"),
		txn("t2", "2024-01-15", "Revenue", "0", "500"),
	})

	m := report.Aggregates.Map()
	require.Len(t, m, 4)
	assert.True(t, m["Total Assets"].Equal(dec("500")))
	assert.True(t, m["Net Income"].Equal(dec("500")))
	assert.True(t, m["Total Liabilities"].IsZero())
	assert.True(t, m["Total Equity"].IsZero())
}

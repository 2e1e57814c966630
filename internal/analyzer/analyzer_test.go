package analyzer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newDefault() *Analyzer {
	return New(chart.Default(), DefaultConfig())
}

func txn(date, account, debit, credit string) model.Transaction {
	return model.Transaction{
		ID:          "t1",
		Date:        date,
		Description: "test entry",
		Account:     account,
		Debit:       dec(debit),
		Credit:      dec(credit),
		SourceFile:  model.SourceManual,
	}
}

func TestAnalyzeValid(t *testing.T) {
	out := newDefault().Analyze([]model.Transaction{txn("2024-01-15", "Cash", "500", "0")})
	require.Len(t, out, 1)
	assert.Equal(t, model.StatusValid, out[0].Status)
	assert.Empty(t, out[0].Errors)
}

func TestAnalyzePreservesOrderAndInput(t *testing.T) {
	in := []model.Transaction{
		txn("2024-01-15", "Cash", "500", "0"),
		txn("bad-date", "Cash", "10", "0"),
		txn("2024-01-16", "Revenue", "0", "500"),
	}
	in[1].ID = "t2"
	in[2].ID = "t3"

	out := newDefault().Analyze(in)
	require.Len(t, out, len(in))
	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, "t2", out[1].ID)
	assert.Equal(t, "t3", out[2].ID)

	// Input untouched.
	assert.Equal(t, model.Status(""), in[1].Status)
	assert.Nil(t, in[1].Errors)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := newDefault()
	in := []model.Transaction{
		txn("2024-01-15", "Cash", "500", "0"),
		txn("2024-13-01", "Cash", "10", "0"),
		txn("2024-01-15", "Cash", "60000", "0"),
		txn("2024-01-15", "Cash", "0", "250"),
	}
	once := a.Analyze(in)
	twice := a.Analyze(once)
	assert.Equal(t, once, twice)
}

func TestAnalyzeIgnoresPersistedStatus(t *testing.T) {
	in := txn("2024-01-15", "Cash", "500", "0")
	in.Status = model.StatusError
	in.Errors = []string{"stale message"}

	out := newDefault().Analyze([]model.Transaction{in})
	assert.Equal(t, model.StatusValid, out[0].Status)
	assert.Empty(t, out[0].Errors)
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-01-15", true},
		{"2024-02-29", true}, // leap year
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-00-10", false},
		{"2024-04-31", false},
		{"2024-1-15", false},
		{"24-01-15", false},
		{"2024/01/15", false},
		{"15-01-2024", false},
		{"2024-01-15 ", false},
		{"2024-01-15T00:00:00", false},
		{"", false},
		{"not a date", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidDate(tt.date), tt.date)
	}
}

func TestErrorRulesAccumulate(t *testing.T) {
	out := newDefault().Analyze([]model.Transaction{txn("2024-13-01", "Cash", "-10", "0")})
	require.Len(t, out, 1)
	assert.Equal(t, model.StatusError, out[0].Status)
	assert.Equal(t, []string{msgInvalidDate, msgNegativeAmount}, out[0].Errors)
}

func TestDoubleSidedIsError(t *testing.T) {
	out := newDefault().Analyze([]model.Transaction{txn("2024-01-15", "Cash", "100", "100")})
	assert.Equal(t, model.StatusError, out[0].Status)
	assert.Equal(t, []string{msgDoubleSided}, out[0].Errors)
}

func TestLargeTransactionThreshold(t *testing.T) {
	a := newDefault()

	atLimit := a.Analyze([]model.Transaction{txn("2024-01-15", "Sundry", "50000.00", "0")})
	assert.Equal(t, model.StatusValid, atLimit[0].Status)

	over := a.Analyze([]model.Transaction{txn("2024-01-15", "Sundry", "50000.01", "0")})
	assert.Equal(t, model.StatusAnomaly, over[0].Status)
	assert.Equal(t, []string{"Large transaction detected (exceeds $50,000.00)."}, over[0].Errors)
}

func TestErrorBeatsLarge(t *testing.T) {
	// A negative credit forces Error; the large rule is gated off, so
	// only the error message appears.
	out := newDefault().Analyze([]model.Transaction{txn("2024-01-15", "Cash", "60000", "-5")})
	assert.Equal(t, model.StatusError, out[0].Status)
	assert.Equal(t, []string{msgNegativeAmount}, out[0].Errors)
}

func TestLargeSuppressesOppositeEntry(t *testing.T) {
	// A 60,000 debit on a credit-normal account matches both anomaly
	// rules, but the opposite-entry rule only runs while still Valid.
	out := newDefault().Analyze([]model.Transaction{txn("2024-01-15", "Accounts Payable", "60000", "0")})
	assert.Equal(t, model.StatusAnomaly, out[0].Status)
	require.Len(t, out[0].Errors, 1)
	assert.Contains(t, out[0].Errors[0], "Large transaction")
}

func TestOppositeEntryAnomalies(t *testing.T) {
	a := newDefault()

	creditOnAsset := a.Analyze([]model.Transaction{txn("2024-01-15", "Cash", "0", "150")})
	assert.Equal(t, model.StatusAnomaly, creditOnAsset[0].Status)
	assert.Equal(t, []string{msgUnexpectedCredit}, creditOnAsset[0].Errors)

	debitOnRevenue := a.Analyze([]model.Transaction{txn("2024-01-15", "Revenue", "150", "0")})
	assert.Equal(t, model.StatusAnomaly, debitOnRevenue[0].Status)
	assert.Equal(t, []string{msgUnexpectedDebit}, debitOnRevenue[0].Errors)

	// 100.00 exactly is not anomalous; the comparison is strict.
	atLimit := a.Analyze([]model.Transaction{txn("2024-01-15", "Cash", "0", "100.00")})
	assert.Equal(t, model.StatusValid, atLimit[0].Status)

	// Unclassified accounts have no normal side to violate.
	unclassified := a.Analyze([]model.Transaction{txn("2024-01-15", "Sundry", "0", "150")})
	assert.Equal(t, model.StatusValid, unclassified[0].Status)
}

func TestCustomThresholdMessage(t *testing.T) {
	a := New(chart.Default(), Config{
		LargeTransaction: dec("1234567.5"),
		OppositeEntry:    dec("100"),
	})
	out := a.Analyze([]model.Transaction{txn("2024-01-15", "Sundry", "2000000", "0")})
	assert.Equal(t, []string{"Large transaction detected (exceeds $1,234,567.50)."}, out[0].Errors)
}

func TestSummarize(t *testing.T) {
	a := newDefault()
	analyzed := a.Analyze([]model.Transaction{
		txn("2024-01-15", "Cash", "500", "0"),
		txn("2024-13-01", "Cash", "10", "0"),
		txn("2024-01-15", "Cash", "60000", "0"),
	})

	s := Summarize(analyzed)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Valid)
	assert.Equal(t, 1, s.Anomalies)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 85, s.HealthScore)
}

func TestSummarizeFloorsAtZero(t *testing.T) {
	bad := make([]model.Transaction, 15)
	for i := range bad {
		bad[i] = txn("nope", "Cash", "1", "0")
	}
	s := Summarize(newDefault().Analyze(bad))
	assert.Equal(t, 15, s.Errors)
	assert.Equal(t, 0, s.HealthScore)
}

func TestGroupedFixed(t *testing.T) {
	assert.Equal(t, "50,000.00", groupedFixed(dec("50000")))
	assert.Equal(t, "100.00", groupedFixed(dec("100")))
	assert.Equal(t, "1,234,567.89", groupedFixed(dec("1234567.89")))
	assert.Equal(t, "0.00", groupedFixed(dec("0")))
	assert.Equal(t, "-1,000.00", groupedFixed(dec("-1000")))
}

// Package chart holds the account classification table: the mapping from
// account name to account type that drives normal-balance conventions.
package chart

import (
	"fmt"
	"os"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Chart provides in-memory lookup over the chart of accounts. Account
// names absent from the chart are unclassified: their balances follow
// net activity (debit minus credit) and they join no aggregate.
type Chart struct {
	accounts []model.Account
	byName   map[string]model.Account
}

// New creates a Chart from a slice of accounts.
func New(accounts []model.Account) *Chart {
	byName := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a
	}
	return &Chart{accounts: accounts, byName: byName}
}

// Load reads a chart CSV file and returns a Chart.
func Load(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return New(accts), nil
}

// Save writes the chart to a CSV file.
func (c *Chart) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, c.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// All returns all accounts in chart order.
func (c *Chart) All() []model.Account {
	return c.accounts
}

// Type returns the account type for a name, or false if unclassified.
func (c *Chart) Type(name string) (model.AccountType, bool) {
	a, ok := c.byName[name]
	return a.Type, ok
}

// DebitNormal reports whether the named account's balance increases with
// debits. Unclassified accounts report false on both DebitNormal and
// CreditNormal; callers fall back to the net-activity convention.
func (c *Chart) DebitNormal(name string) bool {
	a, ok := c.byName[name]
	return ok && a.Type.DebitNormal()
}

// CreditNormal reports whether the named account's balance increases
// with credits.
func (c *Chart) CreditNormal(name string) bool {
	a, ok := c.byName[name]
	return ok && !a.Type.DebitNormal()
}

// ByType returns all accounts of the given type, in chart order.
func (c *Chart) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Default returns the built-in chart covering the common accounts.
func Default() *Chart {
	return New([]model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand and in bank"},
		{Name: "Office Supplies", Type: model.AccountTypeAsset, Description: "Consumable supplies"},
		{Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Amounts owed to vendors"},
		{Name: "Capital", Type: model.AccountTypeEquity, Description: "Owner's capital"},
		{Name: "Revenue", Type: model.AccountTypeRevenue, Description: "Operating revenue"},
		{Name: "Salaries", Type: model.AccountTypeExpense, Description: "Salaries and wages"},
		{Name: "Rent Expense", Type: model.AccountTypeExpense, Description: "Office rent"},
	})
}

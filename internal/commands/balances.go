package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBalancesCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show account balances and statement aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir)
			if err != nil {
				return err
			}
			return runBalances(cmd, p)
		},
	}
}

func runBalances(cmd *cobra.Command, p *project) error {
	txns, err := p.ledger.Load()
	if err != nil {
		return err
	}

	report := p.calculator.Calculate(txns)

	names := make([]string, 0, len(report.Balances))
	for name := range report.Balances {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tBALANCE")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, report.Balances[name].StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	agg := report.Aggregates
	fmt.Fprintf(out, "\nTotal Assets:      %s\n", agg.TotalAssets.StringFixed(2))
	fmt.Fprintf(out, "Total Liabilities: %s\n", agg.TotalLiabilities.StringFixed(2))
	fmt.Fprintf(out, "Total Equity:      %s\n", agg.TotalEquity.StringFixed(2))
	fmt.Fprintf(out, "Net Income:        %s\n", agg.NetIncome.StringFixed(2))
	return nil
}

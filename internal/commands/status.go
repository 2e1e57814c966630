package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/analyzer"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newStatusCommand(dir *string) *cobra.Command {
	var problemsOnly bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Analyze the ledger and show each entry's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir)
			if err != nil {
				return err
			}
			return runStatus(cmd, p, problemsOnly)
		},
	}

	cmd.Flags().BoolVar(&problemsOnly, "problems", false, "only show anomalies and errors")

	return cmd
}

func runStatus(cmd *cobra.Command, p *project, problemsOnly bool) error {
	txns, err := p.ledger.Load()
	if err != nil {
		return err
	}

	analyzed := p.analyzer.Analyze(txns)
	summary := analyzer.Summarize(analyzed)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tACCOUNT\tDEBIT\tCREDIT\tSTATUS\tNOTES")
	for _, t := range analyzed {
		if problemsOnly && t.Status == model.StatusValid {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Date, t.Account, t.Debit.StringFixed(2), t.Credit.StringFixed(2),
			t.Status, strings.Join(t.Errors, "; "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d entries: %d valid, %d anomalies, %d errors. Health score: %d/100\n",
		summary.Total, summary.Valid, summary.Anomalies, summary.Errors, summary.HealthScore)
	return nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/importer"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newAddCommand(dir *string) *cobra.Command {
	var date, description, account, debit, credit string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual ledger entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir)
			if err != nil {
				return err
			}
			return runAdd(cmd, p, ledger.AddParams{
				Date:        strings.TrimSpace(date),
				Description: strings.TrimSpace(description),
				Account:     strings.TrimSpace(account),
				Debit:       importer.ParseAmount(debit),
				Credit:      importer.ParseAmount(credit),
				SourceFile:  model.SourceManual,
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&description, "description", "", "entry description")
	cmd.Flags().StringVar(&account, "account", "", "account name (unclassified if empty)")
	cmd.Flags().StringVar(&debit, "debit", "0", "debit amount")
	cmd.Flags().StringVar(&credit, "credit", "0", "credit amount")

	return cmd
}

func runAdd(cmd *cobra.Command, p *project, params ledger.AddParams) error {
	added, err := p.ledger.Add(params)
	if err != nil {
		return err
	}

	p.log.Info().Str("id", added.ID).Str("account", added.Account).Msg("entry added")
	p.audit("add", added.Description, added.ID)

	// The entry is saved either way; analysis just tells the user what
	// they recorded.
	analyzed := p.analyzer.Analyze([]model.Transaction{added})[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.ID, analyzed.Status)
	for _, msg := range analyzed.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", msg)
	}
	return nil
}

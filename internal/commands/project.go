package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tallybook-dev/tallybook/internal/analyzer"
	"github.com/tallybook-dev/tallybook/internal/auditlog"
	"github.com/tallybook-dev/tallybook/internal/balance"
	"github.com/tallybook-dev/tallybook/internal/chart"
	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/logger"
)

// project wires a directory's config, chart, ledger and engine
// together for the commands.
type project struct {
	dir        string
	cfg        *config.Config
	accounts   *chart.Chart
	ledger     *ledger.Service
	analyzer   *analyzer.Analyzer
	calculator *balance.Calculator
	log        zerolog.Logger
}

// openProject loads a project from dir, failing if it was never
// initialized.
func openProject(dir string) (*project, error) {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("opening project in %s (run 'tallybook init'?): %w", dir, err)
	}

	accounts, err := chart.Load(config.Resolve(dir, cfg.Chart.Path))
	if err != nil {
		return nil, err
	}

	thresholds, err := cfg.Thresholds.AnalyzerConfig()
	if err != nil {
		return nil, err
	}

	a := analyzer.New(accounts, thresholds)
	return &project{
		dir:        dir,
		cfg:        cfg,
		accounts:   accounts,
		ledger:     ledger.NewService(config.Resolve(dir, cfg.Ledger.Path)),
		analyzer:   a,
		calculator: balance.NewCalculator(accounts, a),
		log:        logger.New(),
	}, nil
}

// audit records a ledger mutation. Audit failures are logged, not
// fatal; the mutation itself already succeeded.
func (p *project) audit(action, details, txnID string) {
	entry := auditlog.Entry{
		Timestamp:     time.Now().UTC(),
		Action:        action,
		Details:       details,
		TransactionID: txnID,
	}
	if err := auditlog.Append(config.Resolve(p.dir, p.cfg.Audit.Path), []auditlog.Entry{entry}); err != nil {
		p.log.Warn().Err(err).Str("action", action).Msg("audit log append failed")
	}
}

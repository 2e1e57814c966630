package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tallybook-dev/tallybook/internal/analyzer"
)

// FileName is the project configuration file.
const FileName = "tallybook.yaml"

// Config represents the top-level tallybook.yaml configuration.
type Config struct {
	Ledger     LedgerConfig     `yaml:"ledger"`
	Chart      ChartConfig      `yaml:"chart"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Audit      AuditConfig      `yaml:"audit"`
}

// LedgerConfig locates the ledger file.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// ChartConfig locates the chart of accounts.
type ChartConfig struct {
	Path string `yaml:"path"`
}

// ThresholdsConfig holds the analyzer thresholds as exact decimal
// strings. The defaults must stay at 50000.00 / 100.00 for
// compatibility with existing books.
type ThresholdsConfig struct {
	LargeTransaction string `yaml:"large_transaction"`
	OppositeEntry    string `yaml:"opposite_entry"`
}

// AuditConfig locates the mutation log.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// AnalyzerConfig parses the thresholds into an analyzer.Config.
func (t ThresholdsConfig) AnalyzerConfig() (analyzer.Config, error) {
	large, err := decimal.NewFromString(t.LargeTransaction)
	if err != nil {
		return analyzer.Config{}, fmt.Errorf("parsing large_transaction threshold %q: %w", t.LargeTransaction, err)
	}
	opposite, err := decimal.NewFromString(t.OppositeEntry)
	if err != nil {
		return analyzer.Config{}, fmt.Errorf("parsing opposite_entry threshold %q: %w", t.OppositeEntry, err)
	}
	return analyzer.Config{LargeTransaction: large, OppositeEntry: opposite}, nil
}

// Load reads a tallybook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{Path: "ledger.json"},
		Chart:  ChartConfig{Path: "chart.csv"},
		Thresholds: ThresholdsConfig{
			LargeTransaction: "50000.00",
			OppositeEntry:    "100.00",
		},
		Audit: AuditConfig{Path: filepath.Join("logs", "audit-log.csv")},
	}
}

// Resolve joins a configured path with the project directory unless it
// is already absolute.
func Resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

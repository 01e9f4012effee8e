package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backtester/market"
)

// Config is the complete backtest run configuration.
type Config struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Start       string  `json:"start,omitempty" yaml:"start,omitempty"` // YYYY-MM-DD, inclusive
	End         string  `json:"end,omitempty" yaml:"end,omitempty"`     // YYYY-MM-DD, exclusive
	InitialCash float64 `json:"initial_cash" yaml:"initial_cash"`
	Strategy    string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	LogLevel    string  `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	Data    DataConfig    `json:"data" yaml:"data"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Report  ReportConfig  `json:"report" yaml:"report"`
}

// DataConfig selects where candles come from.
type DataConfig struct {
	Source   string `json:"source" yaml:"source"` // "csv" or "binance"
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type ReportConfig struct {
	Chart string `json:"chart,omitempty" yaml:"chart,omitempty"`
	Org   string `json:"org,omitempty" yaml:"org,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for .yaml/.yml and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.InitialCash <= 0 {
		return fmt.Errorf("initial_cash must be positive")
	}
	if _, _, err := c.Range(); err != nil {
		return err
	}

	switch c.Data.Source {
	case "csv":
		if c.Data.Path == "" {
			return fmt.Errorf("data.path required for csv source")
		}
	case "binance":
		if c.Data.Interval != "" && c.Data.Interval != "1d" {
			return fmt.Errorf("data.interval must be '1d', bars are daily")
		}
	default:
		return fmt.Errorf("data.source must be 'csv' or 'binance'")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

// Range parses Start and End. Empty values come back as zero times, which
// the data layer treats as unbounded.
func (c *Config) Range() (start, end time.Time, err error) {
	if start, err = parseDate("start", c.Start); err != nil {
		return
	}
	if end, err = parseDate("end", c.End); err != nil {
		return
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		err = fmt.Errorf("start must be before end")
	}
	return
}

func parseDate(key, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(market.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: want YYYY-MM-DD, got %q", key, s)
	}
	return t, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Symbol:      "AAPL",
		Start:       "2020-01-01",
		End:         "2023-01-01",
		InitialCash: 100000,
		Strategy:    "ma-rsi",
		LogLevel:    "info",
		Data: DataConfig{
			Source: "csv",
			Path:   "./aapl.csv",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

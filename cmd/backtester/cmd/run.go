package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/internal/logger"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market/data"
	"github.com/rustyeddy/backtester/report"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Backtest the strategy over a price history",
	Long: `Run the moving average / RSI strategy over daily candles for one symbol.

Settings come from an optional config file; flags override it.

Examples:
  backtester run -f aapl.yaml
  backtester run --symbol AAPL --csv aapl.csv --start 2020-01-01 --end 2023-01-01
  backtester run --symbol BTCUSDT --source binance --chart btc.html`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runConfigPath string
	runSymbol     string
	runStart      string
	runEnd        string
	runCash       float64
	runStrategy   string
	runSource     string
	runCSV        string
	runInterval   string
	runChart      string
	runOrg        string
	runJournal    string
	runDB         string
	runTrades     string
	runEquity     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	f.StringVarP(&runSymbol, "symbol", "s", "", "symbol to backtest")
	f.StringVar(&runStart, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&runEnd, "end", "", "day after the last, YYYY-MM-DD")
	f.Float64Var(&runCash, "cash", 0, "initial cash")
	f.StringVar(&runStrategy, "strategy", "", "strategy name")
	f.StringVar(&runSource, "source", "", "data source: csv or binance")
	f.StringVar(&runCSV, "csv", "", "candle CSV file (implies --source csv)")
	f.StringVar(&runInterval, "interval", "", "binance kline interval (bars are daily, only 1d is accepted)")
	f.StringVar(&runChart, "chart", "", "write an HTML chart to this path")
	f.StringVar(&runOrg, "org", "", "write an Org-mode report to this path")
	f.StringVar(&runJournal, "journal", "", "journal type: none, csv or sqlite")
	f.StringVar(&runDB, "db", "", "SQLite journal path")
	f.StringVar(&runTrades, "trades", "", "CSV journal trades file")
	f.StringVar(&runEquity, "equity", "", "CSV journal equity file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}
	if logLevel == "" && cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	_, err = execute(ctx, cfg, cmd.OutOrStdout())
	return err
}

// runConfig loads the config file, if any, and applies flag overrides.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("symbol", &cfg.Symbol, runSymbol)
	set("start", &cfg.Start, runStart)
	set("end", &cfg.End, runEnd)
	set("strategy", &cfg.Strategy, runStrategy)
	set("source", &cfg.Data.Source, runSource)
	set("interval", &cfg.Data.Interval, runInterval)
	set("chart", &cfg.Report.Chart, runChart)
	set("org", &cfg.Report.Org, runOrg)
	set("journal", &cfg.Journal.Type, runJournal)
	set("db", &cfg.Journal.DBPath, runDB)
	set("trades", &cfg.Journal.TradesFile, runTrades)
	set("equity", &cfg.Journal.EquityFile, runEquity)
	if f.Changed("csv") {
		cfg.Data.Source = "csv"
		cfg.Data.Path = runCSV
	}
	if f.Changed("cash") {
		cfg.InitialCash = runCash
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// execute is the whole pipeline: candles, indicators, strategy, run,
// reports and journal.
func execute(ctx context.Context, cfg *config.Config, out io.Writer) (*backtest.Result, error) {
	start, end, err := cfg.Range()
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(cfg.Data)
	if err != nil {
		return nil, err
	}
	candles, err := data.Load(ctx, provider, data.Request{
		Symbol:   cfg.Symbol,
		Start:    start,
		End:      end,
		Interval: cfg.Data.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("load candles: %w", err)
	}
	logger.Infof("loaded %d candles for %s from %s", len(candles), cfg.Symbol, provider.Name())

	bars, err := indicators.Attach(candles)
	if err != nil {
		return nil, fmt.Errorf("indicators: %w", err)
	}

	strat, err := strategies.ByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	res, err := backtest.Run(ctx, bars, strat, backtest.Config{
		Symbol:      cfg.Symbol,
		InitialCash: decimal.NewFromFloat(cfg.InitialCash),
	})
	if err != nil {
		return nil, fmt.Errorf("backtest: %w", err)
	}

	report.PrintSummary(out, res)

	if cfg.Report.Chart != "" {
		if err := report.WriteChart(cfg.Report.Chart, res, bars); err != nil {
			return nil, fmt.Errorf("chart: %w", err)
		}
		fmt.Fprintf(out, "Chart written to %s\n", cfg.Report.Chart)
	}
	if cfg.Report.Org != "" {
		if err := report.WriteOrg(cfg.Report.Org, res, cfg.Report.Chart); err != nil {
			return nil, fmt.Errorf("org report: %w", err)
		}
		fmt.Fprintf(out, "Org report written to %s\n", cfg.Report.Org)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		if err := backtest.Record(j, res); err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		fmt.Fprintf(out, "Run %s journaled (%s)\n", res.RunID, cfg.Journal.Type)
	}

	return res, nil
}

func newProvider(c config.DataConfig) (data.Provider, error) {
	switch c.Source {
	case "csv":
		return data.NewCSVFile(c.Path), nil
	case "binance":
		return data.NewBinance(c.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", c.Source)
	}
}

func openJournal(c config.JournalConfig) (journal.Journal, error) {
	switch c.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(c.TradesFile, c.EquityFile)
	case "sqlite":
		return journal.NewSQLite(c.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", c.Type)
	}
}

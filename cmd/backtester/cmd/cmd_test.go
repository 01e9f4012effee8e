package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/journal"
)

// writeCandles writes a wavy daily close series long enough to warm up
// every indicator.
func writeCandles(t *testing.T, days int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		px := 100 + 15*math.Sin(float64(i)/6) + float64(i)/10
		fmt.Fprintf(&b, "%s,%.2f,%.2f,%.2f,%.2f,1000\n",
			start.AddDate(0, 0, i).Format("2006-01-02"), px, px+1, px-1, px)
	}

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Symbol = "TEST"
	cfg.Start = "2020-01-01"
	cfg.End = "2020-07-01"
	cfg.Data.Path = writeCandles(t, 200)
	return cfg
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Report.Chart = filepath.Join(dir, "chart.html")
	cfg.Report.Org = filepath.Join(dir, "run.org")
	cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "runs.db")}

	var out bytes.Buffer
	res, err := execute(context.Background(), cfg, &out)
	require.NoError(t, err)

	// 2020-01-01 .. 2020-06-30 inclusive
	assert.Len(t, res.Equity, 182)
	assert.Contains(t, out.String(), " TEST Backtest")
	assert.Contains(t, out.String(), "Portfolio Value: "+res.FinalValue.StringFixed(2))

	for i, tr := range res.Trades {
		want := "Buy"
		if i%2 == 1 {
			want = "Sell"
		}
		assert.Equal(t, want, string(tr.Side), "trade %d", i)
	}
	for _, p := range res.Equity {
		assert.False(t, p.Cash.IsNegative())
		assert.GreaterOrEqual(t, p.Position, int64(0))
	}

	_, err = os.Stat(cfg.Report.Chart)
	assert.NoError(t, err)
	org, err := os.ReadFile(cfg.Report.Org)
	require.NoError(t, err)
	assert.Contains(t, string(org), ":RUN_ID:      "+res.RunID)

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	require.NoError(t, err)
	defer j.Close()

	run, err := j.GetRun(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, len(res.Trades), run.Trades)
	eq, err := j.ListEquityByRunID(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Len(t, eq, len(res.Equity))
}

func TestExecuteCSVJournal(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Journal = config.JournalConfig{
		Type:       "csv",
		TradesFile: filepath.Join(dir, "trades.csv"),
		EquityFile: filepath.Join(dir, "equity.csv"),
	}

	_, err := execute(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	b, err := os.ReadFile(cfg.Journal.EquityFile)
	require.NoError(t, err)
	assert.Equal(t, 183, strings.Count(string(b), "\n"), "header plus one row per bar")
}

func TestExecuteNoData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Start, cfg.End = "2030-01-01", "2031-01-01"

	_, err := execute(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "no candles")
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(ctx, testConfig(t), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bt.yaml")

	out, err := runCLI(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = runCLI(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Symbol: AAPL (2020-01-01 .. 2023-01-01)")
	assert.Contains(t, out, "Journal: none")
}

func TestRunCommandFlags(t *testing.T) {
	csvPath := writeCandles(t, 120)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	out, err := runCLI(t, "run", "--symbol", "WAVE", "--csv", csvPath,
		"--start", "2020-01-01", "--end", "2020-04-01", "--cash", "5000",
		"--journal", "sqlite", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, " WAVE Backtest")
	assert.Contains(t, out, "Initial Cash:    5000.00")
	assert.Contains(t, out, "journaled (sqlite)")

	out, err = runCLI(t, "journal", "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "WAVE")
	assert.Contains(t, out, "2020-01-01..2020-03-31")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "backtester version "+version+"\n", out)
}

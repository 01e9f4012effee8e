package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

func sampleRun(t *testing.T) (*backtest.Result, []market.Bar) {
	t.Helper()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct{ close, trend, osc float64 }{
		{95, market.Undefined, market.Undefined},
		{100, 90, 20},
		{95, 95, 50},
		{80, 90, 80},
		{90, 88, 50},
		{100, 90, 20},
		{110, 100, 50},
	}
	bars := make([]market.Bar, len(rows))
	for i, r := range rows {
		b := market.NewBar(market.Candle{Time: start.AddDate(0, 0, i), Close: r.close})
		b.TrendAvg, b.Oscillator = r.trend, r.osc
		bars[i] = b
	}

	res, err := backtest.Run(context.Background(), bars, strategies.MARSI{}, backtest.Config{
		Symbol:      "AAPL",
		InitialCash: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	return res, bars
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	res, _ := sampleRun(t)
	var buf bytes.Buffer
	PrintSummary(&buf, res)
	out := buf.String()

	assert.Contains(t, out, " AAPL Backtest")
	assert.Contains(t, out, "Initial Cash:    100000.00")
	assert.Contains(t, out, "Final Cash:      0.00")
	assert.Contains(t, out, "Position:        800 shares")
	assert.Contains(t, out, "Position Value:  88000.00")
	assert.Contains(t, out, "Portfolio Value: 88000.00")
	assert.Contains(t, out, "2020-01-02  Buy       1000 @ 100.00")
	assert.Contains(t, out, "2020-01-04  Sell      1000 @ 80.00")
	assert.Contains(t, out, "Round Trips:   1 (wins 0, losses 1)")
}

func TestRenderOrg(t *testing.T) {
	t.Parallel()

	res, _ := sampleRun(t)
	created := time.Date(2024, 2, 3, 4, 5, 0, 0, time.UTC)

	b, err := RenderOrg(res, created, "aapl.html")
	require.NoError(t, err)
	out := string(b)

	assert.True(t, strings.HasPrefix(out, "* BACKTEST: ma-rsi AAPL\n"))
	assert.Contains(t, out, ":RUN_ID:      "+res.RunID)
	assert.Contains(t, out, ":START_DATE:  2020-01-01")
	assert.Contains(t, out, ":END_VALUE:   88000.00")
	assert.Contains(t, out, ":TRADES:      3")
	assert.Contains(t, out, ":CREATED:     [2024-02-03 Sat 04:05]")
	assert.Contains(t, out, "| 2020-01-06 | Buy | 800 | 100.00 |")
	assert.Contains(t, out, "[[file:aapl.html]]")

	b, err = RenderOrg(res, created, "")
	require.NoError(t, err)
	assert.NotContains(t, string(b), "[[file:")

	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteOrg(path, res, ""))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	res, bars := sampleRun(t)

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, res, bars))
	html := buf.String()

	assert.Contains(t, html, "AAPL Backtest")
	assert.Contains(t, html, "Close Price")
	assert.Contains(t, html, "20-Day MA")
	assert.Contains(t, html, "Buy Signal")
	assert.Contains(t, html, "Sell Signal")
	assert.Contains(t, html, "2020-01-04")

	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteChart(path, res, bars))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSignalPointsSkipsUnknownDates(t *testing.T) {
	t.Parallel()

	d := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	pts := signalPoints([]time.Time{d, d.AddDate(0, 0, 1)}, map[string]float64{"2020-01-02": 10}, "triangle", 0)
	require.Len(t, pts, 1)
	assert.Equal(t, []interface{}{"2020-01-02", 10.0}, pts[0].Value)
}

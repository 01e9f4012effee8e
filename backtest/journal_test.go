package backtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/journal"
)

func TestRecordToSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	res := run(t, "100000", makeBars(
		flat(95),
		row{100, 90, 20},
		flat(95),
		row{80, 90, 80},
	))

	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "bt.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, Record(j, res))

	got, err := j.GetRun(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "TEST", got.Symbol)
	assert.Equal(t, "ma-rsi", got.Strategy)
	assert.Equal(t, 100000.0, got.InitialCash)
	assert.Equal(t, 80000.0, got.FinalValue)
	assert.Equal(t, 2, got.Trades)

	trades, err := j.ListTradesByRunID(ctx, res.RunID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "Buy", trades[0].Side)
	assert.Equal(t, 100.0, trades[0].Price)
	assert.Equal(t, "Sell", trades[1].Side)

	eq, err := j.ListEquityByRunID(ctx, res.RunID)
	require.NoError(t, err)
	assert.Len(t, eq, 4)

	assert.NoError(t, Record(nil, res))
}

func TestRecordPre1970Run(t *testing.T) {
	t.Parallel()

	bars := makeBars(flat(95), row{100, 90, 20}, flat(95), row{80, 90, 80})
	for i := range bars {
		bars[i].Date = bars[i].Date.AddDate(-55, 0, 0)
	}
	require.Equal(t, 1965, bars[0].Date.Year())
	res := run(t, "100000", bars)

	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "bt.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, Record(j, res))

	trades, err := j.ListTradesByRunID(context.Background(), res.RunID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.NotEqual(t, trades[0].TradeID, trades[1].TradeID)
	assert.Equal(t, 1965, trades[0].Date.Year())
}

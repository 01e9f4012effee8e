package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

func TestNoop_OnBar(t *testing.T) {
	strat := Noop{}
	b := bar(100, 90, 10)

	sig := strat.OnBar(5, b)
	assert.Equal(t, None, sig.Kind)
	assert.Equal(t, b.Date, sig.Date)
	assert.Equal(t, "noop", strat.Name())
}

func TestByName(t *testing.T) {
	s, err := ByName(" MA-RSI ")
	require.NoError(t, err)
	assert.Equal(t, MARSIName, s.Name())

	s, err = ByName("")
	require.NoError(t, err)
	assert.Equal(t, MARSIName, s.Name(), "empty name selects the default")

	s, err = ByName("noop")
	require.NoError(t, err)
	assert.Equal(t, NoopName, s.Name())

	_, err = ByName("ema-cross")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported: ma-rsi, noop")
}

func bar(closeV, trend, rsi float64) market.Bar {
	b := market.NewBar(market.Candle{
		Time:  time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		Close: closeV,
	})
	b.TrendAvg = trend
	b.Oscillator = rsi
	return b
}

// Package indicators attaches the strategy's technical indicators to a
// price series.
package indicators

import (
	"fmt"
	"math"

	talib "github.com/markcheno/go-talib"

	"github.com/rustyeddy/backtester/market"
)

// Fixed strategy periods.
const (
	TrendPeriod      = 20
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// Lookbacks are the number of leading bars for which each indicator is
// undefined.
const (
	TrendLookback = TrendPeriod - 1
	RSILookback   = RSIPeriod
	MACDLookback  = slowLookback + (MACDSignalPeriod - 1)

	slowLookback = MACDSlowPeriod - 1
)

// Attach builds bars from candles and fills in SMA(20), RSI(14) and
// MACD(12,26,9). Values inside each indicator's warmup window stay
// market.Undefined. Candles must already be cleaned and ordered.
func Attach(candles []market.Candle) ([]market.Bar, error) {
	bars := make([]market.Bar, len(candles))
	for i, c := range candles {
		if !c.Valid() {
			return nil, fmt.Errorf("candle %d (%s): invalid close %v",
				i, c.Time.Format(market.DateLayout), c.Close)
		}
		bars[i] = market.NewBar(c)
	}

	closes := market.Closes(candles)
	n := len(closes)

	if n > TrendLookback {
		sma := talib.Sma(closes, TrendPeriod)
		for i := TrendLookback; i < n; i++ {
			bars[i].TrendAvg = sanitize(sma[i])
		}
	}

	if n > RSILookback {
		rsi := talib.Rsi(closes, RSIPeriod)
		for i := RSILookback; i < n; i++ {
			bars[i].Oscillator = sanitize(rsi[i])
		}
	}

	if n > MACDLookback {
		// talib.Macd runs the signal EMA over its zero-filled warmup, so the
		// signal is taken over the defined MACD values only.
		fast := talib.Ema(closes, MACDFastPeriod)
		slow := talib.Ema(closes, MACDSlowPeriod)
		line := make([]float64, n-slowLookback)
		for i := range line {
			line[i] = fast[i+slowLookback] - slow[i+slowLookback]
		}
		signal := talib.Ema(line, MACDSignalPeriod)
		for i := MACDLookback; i < n; i++ {
			bars[i].MACD = sanitize(line[i-slowLookback])
			bars[i].MACDSignal = sanitize(signal[i-slowLookback])
		}
	}

	return bars, nil
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return market.Undefined
	}
	return v
}

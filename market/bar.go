package market

import (
	"math"
	"time"
)

// Undefined marks an indicator value that is not available yet, usually
// because the indicator is still inside its warmup window.
var Undefined = math.NaN()

// Bar is a dated price observation with the derived indicator values aligned
// to it. Indicator fields hold Undefined during warmup.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	TrendAvg   float64 // moving average of close
	Oscillator float64 // RSI, bounded [0,100]
	MACD       float64 // momentum fast line
	MACDSignal float64 // momentum slow (signal) line
}

// NewBar returns a bar for the candle with every indicator Undefined.
func NewBar(c Candle) Bar {
	return Bar{
		Date:       c.Time,
		Open:       c.Open,
		High:       c.High,
		Low:        c.Low,
		Close:      c.Close,
		Volume:     c.Volume,
		TrendAvg:   Undefined,
		Oscillator: Undefined,
		MACD:       Undefined,
		MACDSignal: Undefined,
	}
}

// Ready reports whether the trend average and oscillator are both defined.
func (b Bar) Ready() bool {
	return Defined(b.TrendAvg) && Defined(b.Oscillator)
}

// Defined reports whether v holds a real indicator value.
func Defined(v float64) bool {
	return !isNaN(v) && !math.IsInf(v, 0)
}

func isNaN(v float64) bool { return v != v }

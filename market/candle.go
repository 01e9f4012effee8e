package market

import "time"

// Candle is one raw daily OHLCV observation as delivered by a data provider,
// before any indicator has been attached.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the candle carries a usable close.
func (c Candle) Valid() bool {
	return !c.Time.IsZero() && c.Close > 0 && !isNaN(c.Close)
}

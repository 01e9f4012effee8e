package strategies

import "github.com/rustyeddy/backtester/market"

const MARSIName = "ma-rsi"

// Oscillator thresholds.
const (
	Oversold   = 30.0
	Overbought = 70.0
)

// MARSI enters when price closes above its trend average while the RSI is
// oversold, and exits when price closes below the average while the RSI is
// overbought. The enter test wins: when it holds the exit test is not
// looked at for that bar.
type MARSI struct{}

func (MARSI) Name() string { return MARSIName }

func (MARSI) OnBar(idx int, bar market.Bar) Signal {
	sig := Signal{Date: bar.Date, Kind: None, Price: bar.Close}

	// the first bar has no predecessor
	if idx == 0 || !bar.Ready() {
		return sig
	}

	switch {
	case bar.Close > bar.TrendAvg && bar.Oscillator < Oversold:
		sig.Kind = Enter
	case bar.Close < bar.TrendAvg && bar.Oscillator > Overbought:
		sig.Kind = Exit
	}
	return sig
}

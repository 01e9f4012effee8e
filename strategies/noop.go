package strategies

import "github.com/rustyeddy/backtester/market"

const NoopName = "noop"

// Noop never signals. It is the buy-nothing baseline.
type Noop struct{}

func (Noop) Name() string { return NoopName }

func (Noop) OnBar(idx int, bar market.Bar) Signal {
	return Signal{Date: bar.Date, Kind: None, Price: bar.Close}
}

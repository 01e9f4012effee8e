package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/ledger"
)

// Result is everything a finished run hands to reporting.
type Result struct {
	RunID    string
	Symbol   string
	Strategy string
	Start    time.Time
	End      time.Time

	InitialCash decimal.Decimal
	Cash        decimal.Decimal
	Position    int64
	FinalClose  float64
	FinalValue  decimal.Decimal

	Trades     []ledger.Trade
	EnterDates []time.Time
	ExitDates  []time.Time
	Equity     []EquityPoint

	Stats Stats
}

// PositionValue is the open position marked to the final close.
func (r *Result) PositionValue() decimal.Decimal {
	return decimal.NewFromFloat(r.FinalClose).Mul(decimal.NewFromInt(r.Position))
}

// Stats are summary figures derived from the trades and equity curve.
type Stats struct {
	NetPL          float64
	ReturnPct      float64
	MaxDrawdownPct float64

	// Round trips are buys of at least one share closed by a sell.
	RoundTrips int
	Wins       int
	Losses     int
	WinRate    float64 // fraction of round trips, 0..1
}

func computeStats(r *Result) Stats {
	var s Stats

	net := r.FinalValue.Sub(r.InitialCash)
	s.NetPL = net.InexactFloat64()
	if r.InitialCash.IsPositive() {
		s.ReturnPct = net.Div(r.InitialCash).InexactFloat64() * 100
	}

	s.MaxDrawdownPct = maxDrawdownPct(r.Equity)

	var entry *ledger.Trade
	for i := range r.Trades {
		tr := r.Trades[i]
		switch tr.Side {
		case ledger.Buy:
			if tr.Shares > 0 {
				entry = &r.Trades[i]
			}
		case ledger.Sell:
			if entry == nil {
				continue
			}
			pl := tr.Price.Sub(entry.Price).Mul(decimal.NewFromInt(tr.Shares))
			s.RoundTrips++
			switch pl.Sign() {
			case 1:
				s.Wins++
			case -1:
				s.Losses++
			}
			entry = nil
		}
	}
	if s.RoundTrips > 0 {
		s.WinRate = float64(s.Wins) / float64(s.RoundTrips)
	}
	return s
}

// maxDrawdownPct is the deepest peak-to-trough fall of the equity curve,
// in percent of the peak.
func maxDrawdownPct(curve []EquityPoint) float64 {
	var (
		peak  decimal.Decimal
		worst float64
	)
	for _, p := range curve {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
			continue
		}
		if !peak.IsPositive() {
			continue
		}
		dd := peak.Sub(p.Value).Div(peak).InexactFloat64() * 100
		if dd > worst {
			worst = dd
		}
	}
	return worst
}

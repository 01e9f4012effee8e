// Package journal exports finished backtest runs: the run summary, every
// executed trade and the per-bar equity curve.
package journal

import "time"

// RunRecord summarizes one backtest run.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Symbol   string
	Strategy string
	Start    time.Time
	End      time.Time

	InitialCash float64
	FinalCash   float64
	Position    int64
	FinalValue  float64

	Trades    int
	Wins      int
	Losses    int
	NetPL     float64
	ReturnPct float64
	MaxDDPct  float64
}

// TradeRecord is one executed fill.
type TradeRecord struct {
	TradeID string
	RunID   string
	Symbol  string
	Date    time.Time
	Side    string
	Price   float64
	Shares  int64
}

// EquitySnapshot is the account marked to one bar's close.
type EquitySnapshot struct {
	RunID    string
	Time     time.Time
	Close    float64
	Cash     float64
	Position int64
	Equity   float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

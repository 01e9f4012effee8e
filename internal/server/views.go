package server

import (
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
)

type runView struct {
	RunID       string  `json:"run_id"`
	Created     string  `json:"created"`
	Symbol      string  `json:"symbol"`
	Strategy    string  `json:"strategy"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	InitialCash float64 `json:"initial_cash"`
	FinalCash   float64 `json:"final_cash"`
	Position    int64   `json:"position"`
	FinalValue  float64 `json:"final_value"`
	Trades      int     `json:"trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	NetPL       float64 `json:"net_pl"`
	ReturnPct   float64 `json:"return_pct"`
	MaxDDPct    float64 `json:"max_drawdown_pct"`
}

func newRunView(r journal.RunRecord) runView {
	return runView{
		RunID:       r.RunID,
		Created:     r.Created.UTC().Format("2006-01-02T15:04:05Z"),
		Symbol:      r.Symbol,
		Strategy:    r.Strategy,
		Start:       r.Start.Format(market.DateLayout),
		End:         r.End.Format(market.DateLayout),
		InitialCash: r.InitialCash,
		FinalCash:   r.FinalCash,
		Position:    r.Position,
		FinalValue:  r.FinalValue,
		Trades:      r.Trades,
		Wins:        r.Wins,
		Losses:      r.Losses,
		NetPL:       r.NetPL,
		ReturnPct:   r.ReturnPct,
		MaxDDPct:    r.MaxDDPct,
	}
}

type tradeView struct {
	TradeID string  `json:"trade_id"`
	Date    string  `json:"date"`
	Side    string  `json:"side"`
	Price   float64 `json:"price"`
	Shares  int64   `json:"shares"`
}

func newTradeView(t journal.TradeRecord) tradeView {
	return tradeView{
		TradeID: t.TradeID,
		Date:    t.Date.Format(market.DateLayout),
		Side:    t.Side,
		Price:   t.Price,
		Shares:  t.Shares,
	}
}

type equityView struct {
	Date     string  `json:"date"`
	Close    float64 `json:"close"`
	Cash     float64 `json:"cash"`
	Position int64   `json:"position"`
	Equity   float64 `json:"equity"`
}

func newEquityView(e journal.EquitySnapshot) equityView {
	return equityView{
		Date:     e.Time.Format(market.DateLayout),
		Close:    e.Close,
		Cash:     e.Cash,
		Position: e.Position,
		Equity:   e.Equity,
	}
}

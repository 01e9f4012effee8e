package backtest

import (
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/id"
	"github.com/rustyeddy/backtester/journal"
)

// RunRecord flattens the result into its journal summary row.
func (r *Result) RunRecord(created time.Time) journal.RunRecord {
	return journal.RunRecord{
		RunID:       r.RunID,
		Created:     created.UTC(),
		Symbol:      r.Symbol,
		Strategy:    r.Strategy,
		Start:       r.Start,
		End:         r.End,
		InitialCash: r.InitialCash.InexactFloat64(),
		FinalCash:   r.Cash.InexactFloat64(),
		Position:    r.Position,
		FinalValue:  r.FinalValue.InexactFloat64(),
		Trades:      len(r.Trades),
		Wins:        r.Stats.Wins,
		Losses:      r.Stats.Losses,
		NetPL:       r.Stats.NetPL,
		ReturnPct:   r.Stats.ReturnPct,
		MaxDDPct:    r.Stats.MaxDrawdownPct,
	}
}

// Record writes the run summary, its trades and its equity curve to j.
func Record(j journal.Journal, r *Result) error {
	if j == nil {
		return nil
	}

	if err := j.RecordRun(r.RunRecord(time.Now())); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for _, tr := range r.Trades {
		err := j.RecordTrade(journal.TradeRecord{
			TradeID: id.New(),
			RunID:   r.RunID,
			Symbol:  r.Symbol,
			Date:    tr.Date,
			Side:    string(tr.Side),
			Price:   tr.Price.InexactFloat64(),
			Shares:  tr.Shares,
		})
		if err != nil {
			return fmt.Errorf("record trade: %w", err)
		}
	}

	for _, p := range r.Equity {
		err := j.RecordEquity(journal.EquitySnapshot{
			RunID:    r.RunID,
			Time:     p.Date,
			Close:    p.Close,
			Cash:     p.Cash.InexactFloat64(),
			Position: p.Position,
			Equity:   p.Value.InexactFloat64(),
		})
		if err != nil {
			return fmt.Errorf("record equity: %w", err)
		}
	}
	return nil
}

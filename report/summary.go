// Package report renders finished backtest runs for people: a plain text
// summary, an Org-mode report and an HTML price/signal chart.
package report

import (
	"fmt"
	"io"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

const rule = "--------------------------------------------------"

// PrintSummary writes the end-of-run figures to w.
func PrintSummary(w io.Writer, r *backtest.Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s Backtest\n", r.Symbol)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Strategy:      %s\n", r.Strategy)
	fmt.Fprintf(w, "Period:        %s .. %s\n", r.Start.Format(market.DateLayout), r.End.Format(market.DateLayout))
	fmt.Fprintf(w, "Bars:          %d\n", len(r.Equity))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades")
	fmt.Fprintln(w, rule)
	for _, tr := range r.Trades {
		fmt.Fprintf(w, "%s  %-4s  %8d @ %s\n", tr.Date.Format(market.DateLayout), tr.Side, tr.Shares, tr.Price.StringFixed(2))
	}
	if len(r.Trades) == 0 {
		fmt.Fprintln(w, "(none)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Initial Cash:    %s\n", r.InitialCash.StringFixed(2))
	fmt.Fprintf(w, "Final Cash:      %s\n", r.Cash.StringFixed(2))
	fmt.Fprintf(w, "Position:        %d shares\n", r.Position)
	fmt.Fprintf(w, "Position Value:  %s\n", r.PositionValue().StringFixed(2))
	fmt.Fprintf(w, "Portfolio Value: %s\n", r.FinalValue.StringFixed(2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", r.Stats.NetPL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.Stats.ReturnPct)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.Stats.MaxDrawdownPct)
	fmt.Fprintf(w, "Round Trips:   %d (wins %d, losses %d)\n", r.Stats.RoundTrips, r.Stats.Wins, r.Stats.Losses)
	if r.Stats.RoundTrips > 0 {
		fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Stats.WinRate*100)
	}
	fmt.Fprintln(w)
}

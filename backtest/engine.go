// Package backtest runs a strategy over an indicator-aligned bar series
// against a single cash/position account.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/id"
	"github.com/rustyeddy/backtester/internal/logger"
	"github.com/rustyeddy/backtester/ledger"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

// DefaultInitialCash funds the account when Config leaves it zero.
var DefaultInitialCash = decimal.NewFromInt(100_000)

var ErrNoBars = errors.New("backtest: no bars")

type Config struct {
	Symbol      string
	InitialCash decimal.Decimal
}

// EquityPoint is the account marked to the bar close after the bar's
// signal, if any, was applied.
type EquityPoint struct {
	Date     time.Time
	Close    float64
	Cash     decimal.Decimal
	Position int64
	Value    decimal.Decimal
}

type Engine struct {
	bars  []market.Bar
	strat strategies.BarStrategy
	cfg   Config

	acct *ledger.Account
}

func NewEngine(bars []market.Bar, strat strategies.BarStrategy, cfg Config) (*Engine, error) {
	if strat == nil {
		return nil, fmt.Errorf("backtest: strategy is required")
	}
	if len(bars) == 0 {
		return nil, ErrNoBars
	}
	if cfg.InitialCash.IsZero() {
		cfg.InitialCash = DefaultInitialCash
	}

	acct, err := ledger.NewAccount(cfg.InitialCash)
	if err != nil {
		return nil, err
	}

	return &Engine{
		bars:  bars,
		strat: strat,
		cfg:   cfg,
		acct:  acct,
	}, nil
}

// Account exposes the live account; it is only mutated inside Run.
func (e *Engine) Account() *ledger.Account { return e.acct }

// Run folds every bar through the strategy once, in order. Each bar's
// decision is executed against the account before the next bar is looked
// at. Open positions are left open at the end and valued at the last close.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:       id.New(),
		Symbol:      e.cfg.Symbol,
		Strategy:    e.strat.Name(),
		Start:       e.bars[0].Date,
		End:         e.bars[len(e.bars)-1].Date,
		InitialCash: e.acct.InitialCash(),
		Equity:      make([]EquityPoint, 0, len(e.bars)),
	}

	logger.Debugf("backtest %s: %s %s..%s, %d bars", res.RunID, res.Strategy,
		res.Start.Format(market.DateLayout), res.End.Format(market.DateLayout), len(e.bars))

	for i, bar := range e.bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sig := e.strat.OnBar(i, bar)
		if err := e.apply(res, sig); err != nil {
			return nil, fmt.Errorf("bar %d (%s): %w", i, bar.Date.Format(market.DateLayout), err)
		}

		closePx := decimal.NewFromFloat(bar.Close)
		res.Equity = append(res.Equity, EquityPoint{
			Date:     bar.Date,
			Close:    bar.Close,
			Cash:     e.acct.Cash(),
			Position: e.acct.Position(),
			Value:    e.acct.Value(closePx),
		})
	}

	last := e.bars[len(e.bars)-1]
	res.FinalClose = last.Close
	res.Trades = e.acct.Trades()
	res.Cash = e.acct.Cash()
	res.Position = e.acct.Position()
	res.FinalValue = e.acct.Value(decimal.NewFromFloat(last.Close))
	res.Stats = computeStats(res)

	return res, nil
}

// apply gates the decision by account state: enters only when flat, exits
// only when long.
func (e *Engine) apply(res *Result, sig strategies.Signal) error {
	price := decimal.NewFromFloat(sig.Price)

	switch sig.Kind {
	case strategies.Enter:
		if !e.acct.Flat() {
			return nil
		}
		if _, err := e.acct.Buy(sig.Date, price); err != nil {
			return err
		}
		res.EnterDates = append(res.EnterDates, sig.Date)

	case strategies.Exit:
		_, sold, err := e.acct.Sell(sig.Date, price)
		if err != nil {
			return err
		}
		if sold {
			res.ExitDates = append(res.ExitDates, sig.Date)
		}
	}
	return nil
}

// Run is the one-shot form of NewEngine + Engine.Run.
func Run(ctx context.Context, bars []market.Bar, strat strategies.BarStrategy, cfg Config) (*Result, error) {
	e, err := NewEngine(bars, strat, cfg)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}

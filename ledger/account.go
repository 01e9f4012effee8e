// Package ledger holds the single cash/position account a backtest mutates.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/internal/logger"
)

var (
	ErrInvalidPrice = errors.New("ledger: price must be positive")
	ErrPositionOpen = errors.New("ledger: position already open")
)

var one = decimal.NewFromInt(1)

// Account is the cash and share position of one run. Cash and position are
// never negative and there is at most one open lot. It is not safe for
// concurrent use; a run owns its account.
type Account struct {
	initialCash decimal.Decimal
	cash        decimal.Decimal
	position    int64
	trades      []Trade
}

// NewAccount opens an account funded with initialCash.
func NewAccount(initialCash decimal.Decimal) (*Account, error) {
	if !initialCash.IsPositive() {
		return nil, fmt.Errorf("ledger: initial cash must be positive, got %s", initialCash)
	}
	return &Account{
		initialCash: initialCash,
		cash:        initialCash,
	}, nil
}

func (a *Account) InitialCash() decimal.Decimal { return a.initialCash }
func (a *Account) Cash() decimal.Decimal        { return a.cash }
func (a *Account) Position() int64              { return a.position }

// Flat reports whether no shares are held.
func (a *Account) Flat() bool { return a.position == 0 }

// Trades returns a copy of the trade history.
func (a *Account) Trades() []Trade {
	out := make([]Trade, len(a.trades))
	copy(out, a.trades)
	return out
}

// Buy spends as much cash as buys whole shares at price. When cash does not
// cover a single share the buy is still recorded with zero shares and the
// account stays flat.
func (a *Account) Buy(date time.Time, price decimal.Decimal) (Trade, error) {
	if !price.IsPositive() {
		return Trade{}, ErrInvalidPrice
	}
	if a.position > 0 {
		return Trade{}, ErrPositionOpen
	}

	shares := affordable(a.cash, price)
	tr := Trade{Date: date, Side: Buy, Price: price, Shares: shares}

	a.cash = a.cash.Sub(tr.Notional())
	a.position += shares
	a.trades = append(a.trades, tr)

	if shares == 0 {
		logger.Warnf("buy: cash %s does not cover one share at %s on %s, recorded zero-share buy",
			a.cash.StringFixed(2), price.StringFixed(2), date.Format("2006-01-02"))
	}
	logger.Infof("buy: %d shares at %s on %s", shares, price.StringFixed(2), date.Format("2006-01-02"))
	return tr, nil
}

// Sell closes the whole position at price. It is a no-op reporting false
// when the account is flat.
func (a *Account) Sell(date time.Time, price decimal.Decimal) (Trade, bool, error) {
	if !price.IsPositive() {
		return Trade{}, false, ErrInvalidPrice
	}
	if a.position == 0 {
		return Trade{}, false, nil
	}

	tr := Trade{Date: date, Side: Sell, Price: price, Shares: a.position}

	a.cash = a.cash.Add(tr.Notional())
	a.position = 0
	a.trades = append(a.trades, tr)

	logger.Infof("sell: %d shares at %s on %s", tr.Shares, price.StringFixed(2), date.Format("2006-01-02"))
	return tr, true, nil
}

// PositionValue marks the held shares to price.
func (a *Account) PositionValue(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(a.position))
}

// Value is cash plus the position marked to price.
func (a *Account) Value(price decimal.Decimal) decimal.Decimal {
	return a.cash.Add(a.PositionValue(price))
}

// affordable is floor(cash/price) in whole shares.
func affordable(cash, price decimal.Decimal) int64 {
	q := cash.Div(price).Floor()
	for q.IsPositive() && q.Mul(price).GreaterThan(cash) {
		q = q.Sub(one)
	}
	if q.IsNegative() {
		return 0
	}
	return q.IntPart()
}

package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side of an executed trade.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Trade is one executed fill. Trades are append-only and ordered by
// execution, which is also bar order.
type Trade struct {
	Date   time.Time
	Side   Side
	Price  decimal.Decimal
	Shares int64
}

// Notional is shares * price.
func (t Trade) Notional() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares))
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %d @ %s on %s", t.Side, t.Shares, t.Price.StringFixed(2), t.Date.Format("2006-01-02"))
}

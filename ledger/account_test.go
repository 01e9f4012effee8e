package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	day1 = time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC)
)

func newAccount(t *testing.T, cash string) *Account {
	t.Helper()
	a, err := NewAccount(d(cash))
	require.NoError(t, err)
	return a
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "100000")
	assert.True(t, a.InitialCash().Equal(d("100000")))
	assert.True(t, a.Cash().Equal(d("100000")))
	assert.Equal(t, int64(0), a.Position())
	assert.True(t, a.Flat())
	assert.Empty(t, a.Trades())

	_, err := NewAccount(decimal.Zero)
	assert.Error(t, err)
	_, err = NewAccount(d("-5"))
	assert.Error(t, err)
}

func TestBuySizing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cash       string
		price      string
		wantShares int64
		wantCash   string
	}{
		{"even", "100000", "100", 1000, "0"},
		{"remainder", "100000", "333.33", 300, "1.00"},
		{"fractional price", "1000", "0.3", 3333, "0.1"},
		{"cannot afford one", "50", "100", 0, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount(t, tt.cash)
			tr, err := a.Buy(day1, d(tt.price))
			require.NoError(t, err)

			assert.Equal(t, Buy, tr.Side)
			assert.Equal(t, tt.wantShares, tr.Shares)
			assert.Equal(t, tt.wantShares, a.Position())
			assert.True(t, a.Cash().Equal(d(tt.wantCash)), "cash %s", a.Cash())
			assert.False(t, a.Cash().IsNegative())
			assert.Len(t, a.Trades(), 1)
		})
	}
}

func TestZeroShareBuyStaysFlat(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "50")
	_, err := a.Buy(day1, d("100"))
	require.NoError(t, err)
	assert.True(t, a.Flat())

	// still flat, so a later buy is allowed and recorded again
	_, err = a.Buy(day2, d("100"))
	require.NoError(t, err)
	assert.Len(t, a.Trades(), 2)
}

func TestBuyWhileLong(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "1000")
	_, err := a.Buy(day1, d("10"))
	require.NoError(t, err)

	_, err = a.Buy(day2, d("1"))
	assert.ErrorIs(t, err, ErrPositionOpen)
	assert.Len(t, a.Trades(), 1)
}

func TestSell(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "100000")

	_, ok, err := a.Sell(day1, d("80"))
	require.NoError(t, err)
	assert.False(t, ok, "flat sell is a no-op")
	assert.Empty(t, a.Trades())

	buy, err := a.Buy(day1, d("100"))
	require.NoError(t, err)

	sell, ok, err := a.Sell(day2, d("80"))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Sell, sell.Side)
	assert.Equal(t, buy.Shares, sell.Shares)
	assert.Equal(t, int64(0), a.Position())
	assert.True(t, a.Cash().Equal(d("80000")), "cash %s", a.Cash())
}

func TestConservation(t *testing.T) {
	t.Parallel()

	initial := d("100000")
	pBuy, pSell := d("123.45"), d("130.10")

	a, err := NewAccount(initial)
	require.NoError(t, err)
	_, err = a.Buy(day1, pBuy)
	require.NoError(t, err)
	_, _, err = a.Sell(day2, pSell)
	require.NoError(t, err)

	shares := initial.Div(pBuy).Floor()
	want := initial.Sub(shares.Mul(pBuy)).Add(shares.Mul(pSell))
	assert.True(t, a.Cash().Equal(want), "got %s want %s", a.Cash(), want)
}

func TestInvalidPrice(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "1000")
	_, err := a.Buy(day1, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, _, err = a.Sell(day1, d("-1"))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestValue(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "1050")
	_, err := a.Buy(day1, d("100"))
	require.NoError(t, err)

	v1 := a.Value(d("110"))
	v2 := a.Value(d("110"))
	assert.True(t, v1.Equal(v2), "valuation is idempotent")
	assert.True(t, v1.Equal(d("1150")))
	assert.True(t, a.PositionValue(d("110")).Equal(d("1100")))
}

func TestTradesIsCopy(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "1000")
	_, err := a.Buy(day1, d("10"))
	require.NoError(t, err)

	trades := a.Trades()
	trades[0].Shares = 1
	assert.Equal(t, int64(100), a.Trades()[0].Shares)
	assert.Equal(t, "Buy 100 @ 10.00 on 2020-03-02", a.Trades()[0].String())
}

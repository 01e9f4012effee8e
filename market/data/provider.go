// Package data supplies ordered daily price candles for one symbol.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/market"
)

// ErrNoData is returned when a provider has nothing for the requested range.
var ErrNoData = errors.New("data: no candles for request")

// Request describes one historical download.
type Request struct {
	Symbol   string
	Start    time.Time // inclusive, zero means unbounded
	End      time.Time // exclusive, zero means unbounded
	Interval string    // daily only; "1d" when empty
}

// Provider unifies the different candle sources.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]market.Candle, error)
}

// Load fetches candles from p and returns them cleaned, sorted and limited to
// the requested range. An empty result is reported as ErrNoData.
func Load(ctx context.Context, p Provider, req Request) ([]market.Candle, error) {
	if p == nil {
		return nil, fmt.Errorf("data: provider is required")
	}
	if req.Symbol == "" {
		return nil, fmt.Errorf("data: symbol is required")
	}
	if !req.Start.IsZero() && !req.End.IsZero() && !req.Start.Before(req.End) {
		return nil, fmt.Errorf("data: start %s is not before end %s",
			req.Start.Format(market.DateLayout), req.End.Format(market.DateLayout))
	}

	raw, err := p.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	candles := market.Clean(market.Between(raw, req.Start, req.End))
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s %s: %w", p.Name(), req.Symbol, ErrNoData)
	}
	return candles, nil
}

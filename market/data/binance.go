package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/rustyeddy/backtester/market"
)

const (
	binanceKlineLimit = 1000
	binanceDaily      = "1d"
)

// ErrInterval is returned for kline intervals other than daily.
var ErrInterval = errors.New("data: only daily (1d) klines are supported")

// Binance downloads spot klines through the public REST API.
type Binance struct {
	client *binance.Client
}

// NewBinance returns a provider using the public endpoint, or baseURL when
// it is set (tests, mirrors).
func NewBinance(baseURL string) *Binance {
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return &Binance{client: client}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) Fetch(ctx context.Context, req Request) ([]market.Candle, error) {
	interval := req.Interval
	if interval == "" {
		interval = binanceDaily
	}
	if interval != binanceDaily {
		return nil, fmt.Errorf("%w: got %q", ErrInterval, interval)
	}

	var (
		out   []market.Candle
		start = req.Start
	)
	if start.IsZero() {
		// page forward from the first listed kline
		start = time.UnixMilli(0).UTC()
	}
	for {
		svc := b.client.NewKlinesService().
			Symbol(req.Symbol).
			Interval(interval).
			Limit(binanceKlineLimit).
			StartTime(start.UnixMilli())
		if !req.End.IsZero() {
			svc = svc.EndTime(req.End.UnixMilli() - 1)
		}

		klines, err := svc.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("klines %s %s: %w", req.Symbol, interval, err)
		}

		for _, k := range klines {
			c, err := candleFromKline(k)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}

		if len(klines) < binanceKlineLimit {
			return out, nil
		}
		start = time.UnixMilli(klines[len(klines)-1].OpenTime + 1).UTC()
		if !req.End.IsZero() && !start.Before(req.End) {
			return out, nil
		}
	}
}

func candleFromKline(k *binance.Kline) (market.Candle, error) {
	fields := []string{k.Open, k.High, k.Low, k.Close, k.Volume}
	vals := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("bad kline value %q: %w", s, err)
		}
		vals[i] = v
	}
	return market.Candle{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

package market

import (
	"sort"
	"time"
)

// DateLayout is the calendar date format used for ranges and reports.
const DateLayout = "2006-01-02"

// Clean drops candles without a usable close, sorts the rest by time and
// removes duplicate dates, keeping the last occurrence. The input slice is
// not modified.
func Clean(candles []Candle) []Candle {
	out := make([]Candle, 0, len(candles))
	for _, c := range candles {
		if !c.Valid() {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})

	dedup := out[:0]
	for _, c := range out {
		n := len(dedup)
		if n > 0 && sameDay(dedup[n-1].Time, c.Time) {
			dedup[n-1] = c
			continue
		}
		dedup = append(dedup, c)
	}
	return dedup
}

// Between returns the candles whose time falls inside [from, to). A zero
// bound is open.
func Between(candles []Candle, from, to time.Time) []Candle {
	out := make([]Candle, 0, len(candles))
	for _, c := range candles {
		if InRange(c.Time, from, to) {
			out = append(out, c)
		}
	}
	return out
}

// InRange reports whether t is inside [from, to); zero bounds are open.
func InRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// Closes extracts the close prices in order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

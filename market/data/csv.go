package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/backtester/market"
)

// CSVFile reads daily candles from a CSV file with a header row. Column
// names are matched case-insensitively; "date" and "close" are required,
// "open", "high", "low" and "volume" are optional. Rows with an empty or
// unparsable close are skipped, the way the download step drops NaN rows.
//
//	date,open,high,low,close,volume
//	2020-01-02,74.06,75.15,73.80,75.09,135480400
type CSVFile struct {
	Path string
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

func (p *CSVFile) Name() string { return "csv" }

func (p *CSVFile) Fetch(ctx context.Context, req Request) ([]market.Candle, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses candles from r. See CSVFile for the accepted layout.
func ReadCSV(ctx context.Context, r io.Reader) ([]market.Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		if dateCol, ok = cols["time"]; !ok {
			return nil, fmt.Errorf("csv header missing date column: %v", header)
		}
	}
	closeCol, ok := cols["close"]
	if !ok {
		return nil, fmt.Errorf("csv header missing close column: %v", header)
	}

	var out []market.Candle
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) <= dateCol || len(row) <= closeCol {
			continue
		}

		t, err := parseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		closeV, ok := parseFloat(row[closeCol])
		if !ok {
			continue
		}

		c := market.Candle{Time: t, Close: closeV}
		c.Open = optional(row, cols, "open")
		c.High = optional(row, cols, "high")
		c.Low = optional(row, cols, "low")
		c.Volume = optional(row, cols, "volume")
		out = append(out, c)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{market.DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func optional(row []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return 0
	}
	v, _ := parseFloat(row[i])
	return v
}

package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
)

const (
	colorClose = "#3b82f6"
	colorTrend = "#fbbf24"
	colorBuy   = "#16a34a"
	colorSell  = "#dc2626"

	chartWidth  = "1400px"
	chartHeight = "700px"
)

// emptyPoint is the ECharts placeholder for a missing value.
const emptyPoint = "-"

// Chart builds the close price / trend average chart with buy and sell
// markers for r over bars.
func Chart(r *backtest.Result, bars []market.Bar) *charts.Line {
	title := fmt.Sprintf("%s Backtest", r.Symbol)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s  final value %s", r.Strategy, r.FinalValue.StringFixed(2)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	dates := make([]string, len(bars))
	closes := make([]opts.LineData, len(bars))
	trend := make([]opts.LineData, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format(market.DateLayout)
		closes[i] = opts.LineData{Value: b.Close}
		if market.Defined(b.TrendAvg) {
			trend[i] = opts.LineData{Value: b.TrendAvg}
		} else {
			trend[i] = opts.LineData{Value: emptyPoint}
		}
	}

	line.SetXAxis(dates).
		AddSeries("Close Price", closes,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorClose, Opacity: opts.Float(0.6)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorClose})).
		AddSeries("20-Day MA", trend,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorTrend, Opacity: opts.Float(0.6)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorTrend}))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	closeByDate := make(map[string]float64, len(bars))
	for i, b := range bars {
		closeByDate[dates[i]] = b.Close
	}

	markers := charts.NewScatter()
	markers.AddSeries("Buy Signal", signalPoints(r.EnterDates, closeByDate, "triangle", 0),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorBuy}))
	markers.AddSeries("Sell Signal", signalPoints(r.ExitDates, closeByDate, "triangle", 180),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorSell}))

	line.Overlap(markers)
	return line
}

func signalPoints(dates []time.Time, closeByDate map[string]float64, symbol string, rotate int) []opts.ScatterData {
	out := make([]opts.ScatterData, 0, len(dates))
	for _, d := range dates {
		key := d.Format(market.DateLayout)
		px, ok := closeByDate[key]
		if !ok {
			continue
		}
		out = append(out, opts.ScatterData{
			Value:        []interface{}{key, px},
			Symbol:       symbol,
			SymbolSize:   14,
			SymbolRotate: rotate,
		})
	}
	return out
}

// RenderChart writes the chart as a standalone HTML page.
func RenderChart(w io.Writer, r *backtest.Result, bars []market.Bar) error {
	return Chart(r, bars).Render(w)
}

// WriteChart renders the chart into path.
func WriteChart(path string, r *backtest.Result, bars []market.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderChart(f, r, bars); err != nil {
		_ = f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

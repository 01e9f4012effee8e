package report

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/backtester/backtest"
)

var orgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"date":   func(t time.Time) string { return t.Format("2006-01-02") },
}

var orgTemplate = template.Must(template.New("backtest").Funcs(orgFuncs).Parse(OrgTemplate))

type orgView struct {
	*backtest.Result
	Created time.Time
	Chart   string
}

// RenderOrg returns the Org-mode report for r. chart, when set, is linked
// from the Equity section.
func RenderOrg(r *backtest.Result, created time.Time, chart string) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := orgTemplate.Execute(buf, orgView{Result: r, Created: created, Chart: chart}); err != nil {
		return nil, fmt.Errorf("render org: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteOrg renders the report into path.
func WriteOrg(path string, r *backtest.Result, chart string) error {
	b, err := RenderOrg(r, time.Now(), chart)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

const OrgTemplate = `* BACKTEST: {{.Strategy}} {{.Symbol}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:STRATEGY:    {{.Strategy}}
:SYMBOL:      {{.Symbol}}
:START_DATE:  {{date .Start}}
:END_DATE:    {{date .End}}
:START_CASH:  {{.InitialCash.StringFixed 2}}
:END_CASH:    {{.Cash.StringFixed 2}}
:END_VALUE:   {{.FinalValue.StringFixed 2}}
:NET_PL:      {{printf "%.2f" .Stats.NetPL}}
:RETURN_PCT:  {{printf "%.2f" .Stats.ReturnPct}}
:MAX_DD_PCT:  {{printf "%.2f" .Stats.MaxDrawdownPct}}
:TRADES:      {{len .Trades}}
:WINS:        {{.Stats.Wins}}
:LOSSES:      {{.Stats.Losses}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Stats.NetPL}}*
- Return:           *{{printf "%.2f" .Stats.ReturnPct}}%*
- Max Drawdown:     *{{printf "%.2f" .Stats.MaxDrawdownPct}}%*
- Win Rate:         *{{printf "%.2f" (mul100 .Stats.WinRate)}}%*
- Open Position:    *{{.Position}} shares ({{.PositionValue.StringFixed 2}})*

** Trades
| Date | Side | Shares | Price |
|------+------+--------+-------|
{{- range .Trades }}
| {{date .Date}} | {{.Side}} | {{.Shares}} | {{.Price.StringFixed 2}} |
{{- end }}

** Equity Curve
{{- if .Chart }}
[[file:{{.Chart}}]]
{{- else }}
# render with --chart to link a chart here
{{- end }}
`

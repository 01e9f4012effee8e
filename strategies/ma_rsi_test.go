package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/backtester/market"
)

func TestMARSI_OnBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		idx  int
		bar  market.Bar
		want Kind
	}{
		{"enter above trend oversold", 1, bar(100, 90, 20), Enter},
		{"exit below trend overbought", 3, bar(80, 90, 80), Exit},
		{"first bar never signals", 0, bar(100, 90, 20), None},
		{"above trend but not oversold", 2, bar(100, 90, 50), None},
		{"below trend but not overbought", 2, bar(80, 90, 50), None},
		{"above trend overbought", 2, bar(100, 90, 80), None},
		{"below trend oversold", 2, bar(80, 90, 20), None},
		{"oversold threshold is strict", 2, bar(100, 90, 30), None},
		{"overbought threshold is strict", 2, bar(80, 90, 70), None},
		{"close equal to trend", 2, bar(90, 90, 20), None},
		{"undefined trend", 2, bar(100, market.Undefined, 20), None},
		{"undefined oscillator", 2, bar(80, 90, market.Undefined), None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := MARSI{}.OnBar(tt.idx, tt.bar)
			assert.Equal(t, tt.want, sig.Kind)
			assert.Equal(t, tt.bar.Close, sig.Price)
			assert.Equal(t, tt.bar.Date, sig.Date)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "enter", Enter.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "none", None.String())
}

// Package strategies turns aligned price and indicator bars into entry and
// exit signals.
package strategies

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/backtester/market"
)

// Kind is the per-bar decision of a strategy.
type Kind int

const (
	None Kind = iota
	Enter
	Exit
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "none"
	}
}

// Signal is a transient decision for one bar. Price is the bar close.
type Signal struct {
	Date  time.Time
	Kind  Kind
	Price float64
}

// BarStrategy is called once per bar, in date order. It returns exactly one
// decision for the bar; whether the decision executes depends on the
// account state and is up to the caller.
type BarStrategy interface {
	Name() string
	OnBar(idx int, bar market.Bar) Signal
}

var registry = map[string]func() BarStrategy{
	MARSIName: func() BarStrategy { return MARSI{} },
	NoopName:  func() BarStrategy { return Noop{} },
}

// ByName returns a fresh strategy registered under name.
func ByName(name string) (BarStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = MARSIName
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists registered strategies.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

package chem

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Element holds the reference masses of a single element.
type Element struct {
	// Standard is the standard (isotope averaged) atomic weight.
	Standard decimal.Decimal
	// Abundant is the mass of the most abundant naturally occurring isotope.
	Abundant decimal.Decimal
}

type Table interface {
	Lookup(symbol string) (Element, bool)
}

// Weights is an in-memory atomic weight table keyed by case-sensitive symbol.
type Weights map[string]Element

func (w Weights) Lookup(symbol string) (Element, bool) {
	e, ok := w[symbol]
	return e, ok
}

func (w Weights) Symbols() []string {
	l := make([]string, 0, len(w))
	for s := range w {
		l = append(l, s)
	}
	sort.Strings(l)
	return l
}

// Formula maps element symbols to atom counts and remembers the order in
// which symbols were first set.
type Formula struct {
	symbols []string
	counts  map[string]decimal.Decimal
}

func NewFormula() Formula {
	return Formula{counts: make(map[string]decimal.Decimal)}
}

func (f *Formula) Set(symbol string, n decimal.Decimal) {
	if f.counts == nil {
		f.counts = make(map[string]decimal.Decimal)
	}
	if _, ok := f.counts[symbol]; !ok {
		f.symbols = append(f.symbols, symbol)
	}
	f.counts[symbol] = n
}

func (f *Formula) SetInt(symbol string, n int64) { f.Set(symbol, decimal.NewFromInt(n)) }

func (f *Formula) Add(symbol string, n decimal.Decimal) {
	f.Set(symbol, f.Count(symbol).Add(n))
}

// Count returns zero for symbols not in the formula.
func (f Formula) Count(symbol string) decimal.Decimal {
	n, ok := f.counts[symbol]
	if !ok {
		return decimal.Zero
	}
	return n
}

func (f Formula) Has(symbol string) bool {
	_, ok := f.counts[symbol]
	return ok
}

func (f Formula) Len() int { return len(f.symbols) }

func (f Formula) Symbols() []string {
	l := make([]string, len(f.symbols))
	copy(l, f.symbols)
	return l
}

func (f Formula) Clone() Formula {
	c := Formula{
		symbols: make([]string, len(f.symbols)),
		counts:  make(map[string]decimal.Decimal, len(f.counts)),
	}
	copy(c.symbols, f.symbols)
	for s, n := range f.counts {
		c.counts[s] = n
	}
	return c
}

// Prune removes every symbol with a zero count.
func (f *Formula) Prune() {
	symbols := f.symbols[:0]
	for _, s := range f.symbols {
		if f.counts[s].IsZero() {
			delete(f.counts, s)
			continue
		}
		symbols = append(symbols, s)
	}
	f.symbols = symbols
}

// Validate returns an UnknownElementError for the first symbol t does not know.
func (f Formula) Validate(t Table) error {
	for _, s := range f.symbols {
		if _, ok := t.Lookup(s); !ok {
			return UnknownElementError{Symbol: s}
		}
	}
	return nil
}

// Equal ignores symbol order.
func (f Formula) Equal(o Formula) bool {
	if len(f.counts) != len(o.counts) {
		return false
	}
	for s, n := range f.counts {
		m, ok := o.counts[s]
		if !ok || !n.Equal(m) {
			return false
		}
	}
	return true
}

// String renders the formula as symbol/count pairs, eliding counts of one.
func (f Formula) String() string {
	var b strings.Builder
	for _, s := range f.symbols {
		n := f.counts[s]
		if n.IsZero() {
			continue
		}
		b.WriteString(s)
		if !n.Equal(one) {
			b.WriteString(n.String())
		}
	}
	return b.String()
}

package chem

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

func sum(t Table, f Formula, mass func(Element) decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range f.symbols {
		e, ok := t.Lookup(s)
		if !ok {
			return decimal.Zero, UnknownElementError{Symbol: s}
		}
		total = total.Add(f.counts[s].Mul(mass(e)))
	}
	return total, nil
}

// ExactMass is the monoisotopic mass of f.
func ExactMass(t Table, f Formula) (decimal.Decimal, error) {
	return sum(t, f, func(e Element) decimal.Decimal { return e.Abundant })
}

// FormulaWeight is the standard atomic weight based mass of f. Passed a base
// formula it yields the molecular weight, passed a hydrate formula the
// formula weight.
func FormulaWeight(t Table, f Formula) (decimal.Decimal, error) {
	return sum(t, f, func(e Element) decimal.Decimal { return e.Standard })
}

// TheoreticalPercent is the mass percentage of symbol in f, rounded to two
// places.
func TheoreticalPercent(t Table, symbol string, f Formula, weight decimal.Decimal) (decimal.Decimal, error) {
	if weight.IsZero() {
		return decimal.Zero, ErrZeroWeight
	}
	e, ok := t.Lookup(symbol)
	if !ok {
		return decimal.Zero, UnknownElementError{Symbol: symbol}
	}
	return f.Count(symbol).Mul(e.Standard).Div(weight).Mul(hundred).Round(2), nil
}

// AddHydration returns a copy of base with ratio waters added.
func AddHydration(base Formula, ratio decimal.Decimal) Formula {
	h := base.Clone()
	if ratio.IsZero() {
		return h
	}
	h.Add("O", ratio)
	h.Add("H", ratio.Mul(two))
	return h
}

type Record struct {
	Theoretical  decimal.Decimal
	Experimental decimal.NullDecimal
}

// Difference is experimental minus theoretical, rounded to two places. ok is
// false when no experimental value was recorded.
func (r Record) Difference() (diff decimal.Decimal, ok bool) {
	if !r.Experimental.Valid {
		return decimal.Zero, false
	}
	return r.Experimental.Decimal.Sub(r.Theoretical).Round(2), true
}

// Percents holds one Record per element, in formula order.
type Percents struct {
	symbols []string
	records map[string]Record
}

func (p *Percents) put(symbol string, r Record) {
	if _, ok := p.records[symbol]; !ok {
		p.symbols = append(p.symbols, symbol)
	}
	p.records[symbol] = r
}

func (p *Percents) Symbols() []string {
	l := make([]string, len(p.symbols))
	copy(l, p.symbols)
	return l
}

func (p *Percents) Get(symbol string) (Record, bool) {
	r, ok := p.records[symbol]
	return r, ok
}

func (p *Percents) Len() int { return len(p.symbols) }

func (p *Percents) SetExperimental(symbol string, pct decimal.Decimal) error {
	r, ok := p.records[symbol]
	if !ok {
		return UnknownElementError{Symbol: symbol}
	}
	r.Experimental = decimal.NewNullDecimal(pct)
	p.records[symbol] = r
	return nil
}

func (p *Percents) HasExperimental() bool {
	for _, r := range p.records {
		if r.Experimental.Valid {
			return true
		}
	}
	return false
}

// CalcPercents computes theoretical percentages for f and weight. A nil prior
// starts from scratch. Otherwise the symbols and experimental values of prior
// are carried into the result and every theoretical value is recomputed;
// prior is left untouched.
func CalcPercents(t Table, f Formula, weight decimal.Decimal, prior *Percents) (*Percents, error) {
	p := &Percents{records: make(map[string]Record, f.Len())}
	if prior != nil {
		for _, s := range prior.symbols {
			p.put(s, Record{Experimental: prior.records[s].Experimental})
		}
	}
	for _, s := range f.symbols {
		if f.counts[s].IsZero() {
			continue
		}
		if _, ok := p.records[s]; !ok {
			p.put(s, Record{})
		}
	}

	for _, s := range p.symbols {
		pct, err := TheoreticalPercent(t, s, f, weight)
		if err != nil {
			return nil, err
		}
		r := p.records[s]
		r.Theoretical = pct
		p.records[s] = r
	}

	return p, nil
}

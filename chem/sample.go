package chem

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Sample is one analysis session: a base formula, its derived masses, an
// optional hydrate and the per-element percentages.
type Sample struct {
	Name    string
	Formula Formula

	MolecularWeight decimal.Decimal
	ExactMass       decimal.Decimal

	// HydrateRatio is zero when no hydrate was applied. HydrateFormula and
	// FormulaWeight then equal Formula and MolecularWeight.
	HydrateRatio   decimal.Decimal
	HydrateFormula Formula
	FormulaWeight  decimal.Decimal

	Percents *Percents

	table Table
}

// NewSample prunes zero counts from a copy of f and computes every derived
// value. f itself is never modified.
func NewSample(t Table, name string, f Formula) (*Sample, error) {
	f = f.Clone()
	f.Prune()
	if err := f.Validate(t); err != nil {
		return nil, err
	}

	mw, err := FormulaWeight(t, f)
	if err != nil {
		return nil, err
	}
	em, err := ExactMass(t, f)
	if err != nil {
		return nil, err
	}
	pct, err := CalcPercents(t, f, mw, nil)
	if err != nil {
		return nil, err
	}

	return &Sample{
		Name:            name,
		Formula:         f,
		MolecularWeight: mw,
		ExactMass:       em,
		HydrateFormula:  f.Clone(),
		FormulaWeight:   mw,
		Percents:        pct,
		table:           t,
	}, nil
}

func (s *Sample) Hydrated() bool { return s.HydrateRatio.IsPositive() }

// Hydrate applies ratio waters to the base formula, replacing any earlier
// hydrate. A zero ratio clears the hydrate. Experimental values survive.
func (s *Sample) Hydrate(ratio decimal.Decimal) error {
	if ratio.IsNegative() {
		return InvalidNumericInputError{Input: ratio.String(), Err: ErrNegative}
	}

	hf := AddHydration(s.Formula, ratio)
	fw, err := FormulaWeight(s.table, hf)
	if err != nil {
		return err
	}

	var pct *Percents
	if ratio.IsZero() {
		// start over so waters from an earlier hydrate leave no rows behind
		pct, err = CalcPercents(s.table, hf, fw, nil)
		if err == nil {
			for _, sym := range pct.symbols {
				if r, ok := s.Percents.Get(sym); ok && r.Experimental.Valid {
					_ = pct.SetExperimental(sym, r.Experimental.Decimal)
				}
			}
		}
	} else {
		pct, err = CalcPercents(s.table, hf, fw, s.Percents)
	}
	if err != nil {
		return err
	}

	s.HydrateRatio = ratio
	s.HydrateFormula = hf
	s.FormulaWeight = fw
	s.Percents = pct
	return nil
}

// SetExperimental records a measured percentage for symbol.
func (s *Sample) SetExperimental(symbol string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return InvalidNumericInputError{Input: pct.String(), Err: ErrOutOfRange}
	}
	return s.Percents.SetExperimental(symbol, pct)
}

// CombustionElements returns the members of set present in the base formula,
// sorted.
func (s *Sample) CombustionElements(set []string) []string {
	l := make([]string, 0, len(set))
	for _, e := range set {
		if s.Formula.Has(e) {
			l = append(l, e)
		}
	}
	sort.Strings(l)
	return l
}

// DisplayFormula is the base formula followed by the hydrate waters, if any.
func (s *Sample) DisplayFormula() string {
	if !s.Hydrated() {
		return s.Formula.String()
	}
	return fmt.Sprintf("%s * %sH2O", s.Formula, s.HydrateRatio)
}

func (s *Sample) String() string {
	if !s.Hydrated() {
		return fmt.Sprintf(
			"%s MW %s EM %s",
			s.DisplayFormula(),
			s.MolecularWeight.StringFixed(2),
			s.ExactMass.StringFixed(5),
		)
	}

	return fmt.Sprintf(
		"%s MW %s FW %s EM %s",
		s.DisplayFormula(),
		s.MolecularWeight.StringFixed(2),
		s.FormulaWeight.StringFixed(2),
		s.ExactMass.StringFixed(5),
	)
}

package chem

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCount parses an atom count. Blank input counts as zero.
func ParseCount(str string) (int64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, InvalidNumericInputError{Input: str, Err: err}
	}
	if n < 0 {
		return 0, InvalidNumericInputError{Input: str, Err: ErrNegative}
	}
	return n, nil
}

// ParsePercent parses a percentage between 0 and 100.
func ParsePercent(str string) (decimal.Decimal, error) {
	d, err := parseDecimal(str)
	if err != nil {
		return d, err
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero, InvalidNumericInputError{Input: str, Err: ErrOutOfRange}
	}
	return d, nil
}

// ParseRatio parses a hydrate molar ratio, which may be fractional.
func ParseRatio(str string) (decimal.Decimal, error) {
	d, err := parseDecimal(str)
	if err != nil {
		return d, err
	}
	if d.IsNegative() {
		return decimal.Zero, InvalidNumericInputError{Input: str, Err: ErrNegative}
	}
	return d, nil
}

func parseDecimal(str string) (decimal.Decimal, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return decimal.Zero, InvalidNumericInputError{Input: str, Err: ErrEmpty}
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, InvalidNumericInputError{Input: str, Err: err}
	}
	return d, nil
}

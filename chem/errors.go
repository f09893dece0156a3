package chem

import (
	"errors"
	"fmt"
)

var (
	ErrZeroWeight = errors.New("formula weight is zero")
	ErrNegative   = errors.New("must not be negative")
	ErrOutOfRange = errors.New("must be between 0 and 100")
	ErrEmpty      = errors.New("no value given")
)

type UnknownElementError struct{ Symbol string }

func (u UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element: '%s'", u.Symbol)
}

// InvalidNumericInputError is returned for text that was expected to hold a
// count, ratio or percentage.
type InvalidNumericInputError struct {
	Input string
	Err   error
}

func (i InvalidNumericInputError) Error() string {
	return fmt.Sprintf("invalid number: '%s': %v", i.Input, i.Err)
}

func (i InvalidNumericInputError) Unwrap() error { return i.Err }

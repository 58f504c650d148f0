package entities

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var cent = decimal.NewFromInt(100)

// Amount is an exact decimal monetary value.
//
// Docdata expresses amounts in the minor unit for the currency (cents for EUR),
// so Amount converts to and from cents without ever touching floating point.
// Values with more than 2 decimal digits lose the sub-cent part on conversion.
type Amount struct {
	value decimal.Decimal
}

// NewAmount parses a decimal string such as "12.34".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount{value: d}, nil
}

// AmountFromCents converts an amount in minor units back to a decimal amount.
func AmountFromCents(cents int64) Amount {
	return Amount{value: decimal.NewFromInt(cents).Div(cent)}
}

// Cents returns the amount in minor units, truncated toward zero.
func (a Amount) Cents() int64 {
	return a.value.Mul(cent).IntPart()
}

// String formats the amount with exactly 2 decimals, e.g. "42.00".
func (a Amount) String() string {
	return a.value.StringFixed(2)
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Decimal exposes the underlying exact decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

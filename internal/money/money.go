// Package money provides the exact decimal value used for every amount on a bill.
//
// Money never goes through binary floating point. Arithmetic keeps full
// precision; rounding only happens when a caller asks for it with Round or
// Truncate, or when the value is rendered for display.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places shown to people.
const Scale = 2

// ErrInvalidAmount is returned when a string cannot be parsed as an amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is an exact decimal amount. The zero value is 0.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New wraps a decimal value.
func New(d decimal.Decimal) Money {
	return Money{amount: d}
}

// FromInt returns a whole-unit amount.
func FromInt(v int64) Money {
	return Money{amount: decimal.NewFromInt(v)}
}

// Parse reads an amount such as "12.34" or "12,34".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, m := range amounts {
		total = total.Add(m.amount)
	}
	return Money{amount: total}
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }

func (m Money) Sub(o Money) Money { return Money{amount: m.amount.Sub(o.amount)} }

// MulInt multiplies by an integer count, e.g. a number of units.
func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// Div divides by o. o must not be zero.
func (m Money) Div(o Money) Money { return Money{amount: m.amount.Div(o.amount)} }

// DivInt divides by a positive count. It panics when n <= 0; callers guard the
// participant and quantity counts they pass in.
func (m Money) DivInt(n int64) Money {
	if n <= 0 {
		panic(fmt.Sprintf("money: division by non-positive count %d", n))
	}
	return Money{amount: m.amount.Div(decimal.NewFromInt(n))}
}

// Equal reports whether both amounts are numerically equal ("1.0" == "1.00").
func (m Money) Equal(o Money) bool { return m.amount.Equal(o.amount) }

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// NonNegative clamps negative amounts to zero.
func (m Money) NonNegative() Money {
	if m.amount.IsNegative() {
		return Zero
	}
	return m
}

// Round rounds half-up to the given number of places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Truncate drops digits past the given number of places. For the non-negative
// amounts on a bill this rounds down.
func (m Money) Truncate(places int32) Money {
	return Money{amount: m.amount.Truncate(places)}
}

// String renders the amount with two decimals, e.g. "10.00".
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}

// Format renders the amount behind a currency symbol, e.g. "R$ 10.00".
func (m Money) Format(symbol string) string {
	if symbol == "" {
		return m.String()
	}
	return symbol + " " + m.String()
}

// MarshalJSON encodes the exact value as a quoted decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON accepts JSON numbers, numeric strings and null. Null leaves
// the amount at zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	m.amount = d
	return nil
}

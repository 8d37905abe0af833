// Package money provides an exact monetary value type for the credit engine.
// Amounts are stored as integer cents; all arithmetic happens on integers so
// repeated operations never accumulate floating-point drift.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount of Brazilian reais in integer cents.
// The zero value is R$0,00. Money values are immutable.
type Money struct {
	cents int64
}

// Zero is the R$0,00 amount.
var Zero = Money{}

// NewFromCents creates a Money from an integer cent amount.
func NewFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, fmt.Errorf("money amount cannot be negative: %d cents", cents)
	}
	return Money{cents: cents}, nil
}

// NewFromFloat creates a Money from a decimal real value (e.g. 1234.567),
// rounding half-up to the nearest cent.
func NewFromFloat(value float64) (Money, error) {
	if value < 0 {
		return Money{}, fmt.Errorf("money amount cannot be negative: %f", value)
	}
	cents := decimal.NewFromFloat(value).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return Money{cents: cents}, nil
}

// NewFromDecimal creates a Money from a decimal real value, rounding half-up
// to the nearest cent.
func NewFromDecimal(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, fmt.Errorf("money amount cannot be negative: %s", value)
	}
	cents := value.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return Money{cents: cents}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount in reais as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// Float returns the amount in reais as a float64. Intended for display and
// score normalization, not for further monetary arithmetic.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts.
// Fails when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.cents > m.cents {
		return Money{}, fmt.Errorf("money subtraction underflow: %s - %s", m, other)
	}
	return Money{cents: m.cents - other.cents}, nil
}

// Mul returns the amount multiplied by a non-negative scalar, rounded
// half-up to the nearest cent.
func (m Money) Mul(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, fmt.Errorf("money multiplier cannot be negative: %f", factor)
	}
	cents := decimal.NewFromInt(m.cents).Mul(decimal.NewFromFloat(factor)).Round(0).IntPart()
	return Money{cents: cents}, nil
}

// MulInt returns the amount multiplied by a non-negative integer.
func (m Money) MulInt(factor int64) (Money, error) {
	if factor < 0 {
		return Money{}, fmt.Errorf("money multiplier cannot be negative: %d", factor)
	}
	return Money{cents: m.cents * factor}, nil
}

// Div returns the amount divided by a positive scalar, rounded half-up to
// the nearest cent.
func (m Money) Div(divisor float64) (Money, error) {
	if divisor <= 0 {
		return Money{}, fmt.Errorf("money divisor must be positive: %f", divisor)
	}
	cents := decimal.NewFromInt(m.cents).Div(decimal.NewFromFloat(divisor)).Round(0).IntPart()
	return Money{cents: cents}, nil
}

// IsZero reports whether the amount is R$0,00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Equal reports whether two amounts are the same.
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// GreaterThanOrEqual reports whether m is at least other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// String formats the amount as Brazilian currency, e.g. "R$ 1234.56".
func (m Money) String() string {
	return "R$ " + m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number in reais, e.g. 1234.56.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON decodes a JSON number (or quoted number) in reais.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	parsed, err := NewFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

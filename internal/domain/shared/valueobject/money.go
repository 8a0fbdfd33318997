package valueobject

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// CurrencyCode is the ISO 4217 code of the store's single currency.
const CurrencyCode = "BRL"

// minorUnitExp is the decimal exponent of one minor unit (centavo).
const minorUnitExp = -2

// Money is an amount in integer minor units (centavos).
// Sale, creditor and installment amounts all use this representation, so
// sums are exact and never depend on float rounding.
type Money int64

var (
	errFractionalCents = errors.New("amount has fractions of a cent")
	errInvalidParts    = errors.New("parts must be positive")

	// ErrMoneyOverflow is returned when an amount no longer fits in int64 centavos
	ErrMoneyOverflow = errors.New("amount is out of range")
)

// Cents builds Money from a count of centavos
func Cents(c int64) Money {
	return Money(c)
}

// FromDecimal converts a decimal amount (in currency units) to Money.
// Amounts with more than two decimal places are rejected.
func FromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(-minorUnitExp)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, errFractionalCents
	}
	return Money(shifted.IntPart()), nil
}

// FromFloatRounded converts a float amount, rounding half away from zero to
// the nearest centavo. Only for data that was stored as float upstream.
func FromFloatRounded(f float64) Money {
	return Money(decimal.NewFromFloat(f).Shift(-minorUnitExp).Round(0).IntPart())
}

// ParseMoney parses a decimal string such as "19.90"
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount string: %w", err)
	}
	return FromDecimal(d)
}

// Int64 returns the amount in centavos
func (m Money) Int64() int64 {
	return int64(m)
}

// Decimal returns the amount in currency units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), minorUnitExp)
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m < 0
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulInt returns m multiplied by a quantity
func (m Money) MulInt(n int64) Money {
	return m * Money(n)
}

// CheckedAdd returns m + other, or ErrMoneyOverflow if the sum wraps
func (m Money) CheckedAdd(other Money) (Money, error) {
	sum := m + other
	if (other > 0 && sum < m) || (other < 0 && sum > m) {
		return 0, ErrMoneyOverflow
	}
	return sum, nil
}

// CheckedMulInt returns m × n, or ErrMoneyOverflow if the product wraps
func (m Money) CheckedMulInt(n int64) (Money, error) {
	if m == 0 || n == 0 {
		return 0, nil
	}
	if (m == math.MinInt64 && n == -1) || (n == math.MinInt64 && m == -1) {
		return 0, ErrMoneyOverflow
	}
	product := m * Money(n)
	if product/Money(n) != m {
		return 0, ErrMoneyOverflow
	}
	return product, nil
}

// DivFloor divides by n truncating toward zero. This is the single rounding
// rule used for installment values.
func (m Money) DivFloor(n int) (Money, error) {
	if n <= 0 {
		return 0, errInvalidParts
	}
	return m / Money(n), nil
}

// Split divides m into n parts of DivFloor(n); the remainder is added to the
// last part so the parts always sum to m.
func (m Money) Split(n int) ([]Money, error) {
	if n <= 0 {
		return nil, errInvalidParts
	}
	if m < 0 {
		return nil, errors.New("cannot split a negative amount")
	}
	base := m / Money(n)
	parts := make([]Money, n)
	for i := range parts {
		parts[i] = base
	}
	parts[n-1] += m - base*Money(n)
	return parts, nil
}

// String formats the amount with two decimal places, e.g. "19.90"
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number with two decimal places
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	data = bytes.Trim(data, `"`)
	v, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Sum adds up a list of amounts
func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total += v
	}
	return total
}

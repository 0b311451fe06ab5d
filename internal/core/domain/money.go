package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/interbanking/banking_poc/internal/apperrors"
)

// DefaultCurrency is the currency used when a request does not specify one.
const DefaultCurrency = "BRL"

// moneyScale is the number of fractional digits every amount is stored with.
const moneyScale = 2

// Money is an immutable monetary value tagged with a currency code.
// Amounts are normalised to two fractional digits on construction, rounding
// half up. Every operation returns a new value; binary operations require
// matching currencies and fail with apperrors.ErrCurrencyMismatch otherwise.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value from a decimal amount and a currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, fmt.Errorf("%w: currency code is required", apperrors.ErrValidation)
	}
	return Money{amount: amount.Round(moneyScale), currency: currency}, nil
}

// NewMoneyFromString creates a Money value from a decimal string such as "100.00".
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid decimal amount %q", apperrors.ErrValidation, amount)
	}
	return NewMoney(d, currency)
}

// BRL creates a Money value in the default currency.
func BRL(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(moneyScale), currency: DefaultCurrency}
}

// Amount returns the normalised decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m minus other.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual reports whether m is greater than or equal to other.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// IsZeroOrNegative reports whether the amount is zero or below.
func (m Money) IsZeroOrNegative() bool {
	return m.amount.LessThanOrEqual(decimal.Zero)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals reports value equality. Different currencies are never equal.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the value as "CUR 12.34".
func (m Money) String() string {
	return m.currency + " " + m.amount.StringFixed(moneyScale)
}

func (m Money) requireSameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

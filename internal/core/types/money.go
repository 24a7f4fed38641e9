// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; amounts are always
// paired with an ISO 4217 currency code carried alongside.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewMoneyFromInt creates a Money value from whole units.
func NewMoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// Zero returns the zero Money value.
func Zero() Money {
	return decimal.Zero
}

// TaxRate represents a VAT percentage (e.g. 21 for 21 %).
type TaxRate = decimal.Decimal

// TaxRateFromPercent creates a TaxRate from an integer percentage.
func TaxRateFromPercent(percent int) TaxRate {
	return decimal.NewFromInt(int64(percent))
}

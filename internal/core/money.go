// Package core holds the expense domain: records, catalogs and amounts.
//
// This file contains the Amount type and parsing of user-entered amounts.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in rupees with two decimal places.
type Amount struct {
	value decimal.Decimal
}

// NewAmount rounds d half-up to paise.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d.Round(2)}
}

// AmountFromFloat is a convenience for tests and the JSON API.
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// ParseAmount converts user input to an Amount.
//
// A leading rupee sign and thousands separators are accepted ("₹1,250.50").
// The value is rounded half-up to two decimals and must be strictly positive.
//
// Examples:
//
//	ParseAmount("150")       -> 150.00, nil
//	ParseAmount("₹1,250.5")  -> 1250.50, nil
//	ParseAmount("0.004")     -> ErrInvalidAmount (rounds to zero)
//	ParseAmount("-3")        -> ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	a := NewAmount(d)
	if !a.IsPositive() {
		return Amount{}, ErrInvalidAmount
	}
	return a, nil
}

// Decimal exposes the underlying value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) IsPositive() bool { return a.value.IsPositive() }

func (a Amount) IsZero() bool { return a.value.IsZero() }

func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value)}
}

// DivInt divides by n and rounds to paise. Dividing by zero yields zero.
func (a Amount) DivInt(n int) Amount {
	if n == 0 {
		return Amount{}
	}
	return Amount{value: a.value.DivRound(decimal.NewFromInt(int64(n)), 2)}
}

func (a Amount) Cmp(b Amount) int { return a.value.Cmp(b.value) }

func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }

// Share returns a as a percentage of total, rounded to one decimal.
func (a Amount) Share(total Amount) float64 {
	if !total.IsPositive() {
		return 0
	}
	return a.value.Mul(decimal.NewFromInt(100)).DivRound(total.value, 1).InexactFloat64()
}

// Float64 is for rendering only; sums stay in decimal.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// String formats with exactly two decimals, e.g. "150.00".
func (a Amount) String() string { return a.value.StringFixed(2) }

// MarshalJSON encodes the amount as a fixed two-decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = Amount{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}

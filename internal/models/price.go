package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceAmount is a numeric price value that remembers whether its source was
// an integer (20000) or a decimal (20000.5), so serialization reproduces the
// kind the source data used instead of forcing one representation.
type PriceAmount struct {
	value   float64
	decimal bool
}

// IntAmount returns an integer-kind amount.
func IntAmount(v int64) PriceAmount {
	return PriceAmount{value: float64(v)}
}

// DecimalAmount returns a decimal-kind amount.
func DecimalAmount(v float64) PriceAmount {
	return PriceAmount{value: v, decimal: true}
}

// ParsePriceAmount reads an amount from dataset text such as "20000" or
// "15000.5". The kind is inferred from the literal: a fractional point or
// exponent marks it decimal.
func ParsePriceAmount(s string) (PriceAmount, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return PriceAmount{}, fmt.Errorf("parse price amount %q: %w", s, err)
	}
	return PriceAmount{value: v, decimal: strings.ContainsAny(s, ".eE")}, nil
}

// Float64 returns the numeric value regardless of kind.
func (a PriceAmount) Float64() float64 { return a.value }

// IsDecimal reports whether the amount carries decimal kind.
func (a PriceAmount) IsDecimal() bool { return a.decimal }

// String formats the amount the way it will serialize.
func (a PriceAmount) String() string {
	if a.decimal {
		return formatDecimal(a.value)
	}
	return strconv.FormatInt(int64(a.value), 10)
}

// MarshalJSON emits an integer literal for integer-kind amounts and a
// decimal literal (always with a fractional part) for decimal-kind ones.
func (a PriceAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts any JSON number and records its kind from the
// literal form.
func (a *PriceAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = PriceAmount{}
		return nil
	}
	parsed, err := ParsePriceAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

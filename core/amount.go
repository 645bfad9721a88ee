package core

import "fmt"

// Amount is a monetary value in minor units (e.g. cents), the
// representation every Adyen API transmits. Integer minor units avoid
// floating-point rounding in payment amounts.
type Amount struct {
	Value    int64    `json:"value"`
	Currency Currency `json:"currency"`
}

// NewAmount builds an amount directly from minor units.
func NewAmount(minorUnits int64, currency Currency) Amount {
	return Amount{Value: minorUnits, Currency: currency}
}

// AmountFromMajorUnits converts major units (e.g. whole euros) using
// the currency's ISO exponent.
func AmountFromMajorUnits(majorUnits int64, currency Currency) Amount {
	return Amount{Value: majorUnits * currency.MinorUnitFactor(), Currency: currency}
}

// MinorUnits returns the raw value in minor units.
func (a Amount) MinorUnits() int64 { return a.Value }

// IsZero reports whether the amount value is zero.
func (a Amount) IsZero() bool { return a.Value == 0 }

// Validate checks the amount is non-negative and carries a currency.
func (a Amount) Validate() error {
	if a.Value < 0 {
		return NewValidationError("amount.value", "amount cannot be negative")
	}
	if len(a.Currency) != 3 {
		return NewValidationError("amount.currency", "currency code must be three letters")
	}
	return nil
}

func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Value, a.Currency)
}

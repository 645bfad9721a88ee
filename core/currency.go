package core

import "strings"

// Currency is a three-letter ISO 4217 currency code.
type Currency string

// Currencies Adyen accepts across the API family.
const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyNOK Currency = "NOK"
	CurrencySEK Currency = "SEK"
	CurrencyDKK Currency = "DKK"
	CurrencyPLN Currency = "PLN"
	CurrencyCZK Currency = "CZK"
	CurrencyHUF Currency = "HUF"
	CurrencyBRL Currency = "BRL"
	CurrencyMXN Currency = "MXN"
	CurrencySGD Currency = "SGD"
	CurrencyHKD Currency = "HKD"
	CurrencyNZD Currency = "NZD"
	CurrencyZAR Currency = "ZAR"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
	CurrencyKRW Currency = "KRW"
	CurrencyTRY Currency = "TRY"
	CurrencyTHB Currency = "THB"
	CurrencyMYR Currency = "MYR"
	CurrencyIDR Currency = "IDR"
	CurrencyPHP Currency = "PHP"
	CurrencyVND Currency = "VND"
	CurrencyISK Currency = "ISK"
)

// DecimalPlaces returns the ISO 4217 exponent for the currency. Most
// currencies use two; JPY, KRW, VND, and ISK use zero.
func (c Currency) DecimalPlaces() int {
	switch c {
	case CurrencyJPY, CurrencyKRW, CurrencyVND, CurrencyISK:
		return 0
	default:
		return 2
	}
}

// MinorUnitFactor returns 10^DecimalPlaces, used to convert between
// major units and the minor units the API transmits.
func (c Currency) MinorUnitFactor() int64 {
	factor := int64(1)
	for i := 0; i < c.DecimalPlaces(); i++ {
		factor *= 10
	}
	return factor
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	normalized := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if len(normalized) != 3 {
		return "", NewValidationError("currency", "currency code must be three letters")
	}
	return normalized, nil
}

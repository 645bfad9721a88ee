package core

import "testing"

func TestAmountFromMajorUnits(t *testing.T) {
	cases := []struct {
		major    int64
		currency Currency
		want     int64
	}{
		{10, CurrencyEUR, 1000},
		{10, CurrencyJPY, 10},
		{5, CurrencyKRW, 5},
		{1, CurrencyUSD, 100},
	}
	for _, tc := range cases {
		got := AmountFromMajorUnits(tc.major, tc.currency)
		if got.MinorUnits() != tc.want {
			t.Fatalf("AmountFromMajorUnits(%d, %s) = %d, want %d", tc.major, tc.currency, got.MinorUnits(), tc.want)
		}
	}
}

func TestAmountValidate(t *testing.T) {
	if err := NewAmount(1000, CurrencyEUR).Validate(); err != nil {
		t.Fatalf("valid amount rejected: %v", err)
	}
	if err := NewAmount(-1, CurrencyEUR).Validate(); err == nil {
		t.Fatalf("negative amount accepted")
	}
	if err := NewAmount(100, "").Validate(); err == nil {
		t.Fatalf("amount without currency accepted")
	}
}

func TestParseCurrency(t *testing.T) {
	cur, err := ParseCurrency("eur")
	if err != nil {
		t.Fatalf("ParseCurrency(eur) returned error: %v", err)
	}
	if cur != CurrencyEUR {
		t.Fatalf("ParseCurrency(eur) = %s, want EUR", cur)
	}
	if _, err := ParseCurrency("EU"); err == nil {
		t.Fatalf("ParseCurrency(EU) succeeded, want error")
	}
}

func TestCurrencyDecimalPlaces(t *testing.T) {
	if got := CurrencyJPY.DecimalPlaces(); got != 0 {
		t.Fatalf("JPY decimal places = %d, want 0", got)
	}
	if got := CurrencyEUR.DecimalPlaces(); got != 2 {
		t.Fatalf("EUR decimal places = %d, want 2", got)
	}
}

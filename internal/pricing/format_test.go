package pricing_test

import (
	"testing"

	"github.com/boddenberg/precifica-bfa-go/internal/pricing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "R$\u00a00,00"},
		{decimal.Decimal{}, "R$\u00a00,00"},
		{d("0.05"), "R$\u00a00,05"},
		{d("80.65"), "R$\u00a080,65"},
		{d("1234.56"), "R$\u00a01.234,56"},
		{d("1234567.891"), "R$\u00a01.234.567,89"},
		{d("-1"), "-R$\u00a01,00"},
		{d("999.995"), "R$\u00a01.000,00"},
		{d("123456789012345678.9"), "R$\u00a0123.456.789.012.345.678,90"},
		{d("1000000000000000000000"), "R$\u00a01.000.000.000.000.000.000.000,00"},
		{d("-98765432109876543210.129"), "-R$\u00a098.765.432.109.876.543.210,13"},
	}
	for _, tc := range cases {
		if got := pricing.FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"":          "0",
		"   ":       "0",
		"abc":       "0",
		"12.5":      "12.5",
		"12,50":     "12.5",
		"1.234,56":  "1234.56",
		"R$ 10,00":  "10",
		"  7 ":      "7",
		"-3.25":     "-3.25",
		"1e3":       "1000",
		"12,5,0":    "0",
		"R$\u00a09": "9",
	}
	for in, want := range cases {
		if got := pricing.ParseAmount(in); !got.Equal(d(want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRateFromPercent(t *testing.T) {
	assertDecimal(t, "rate", pricing.RateFromPercent(d("6")), d("0.06"))
	assertDecimal(t, "rate", pricing.RateFromPercent(decimal.Zero), decimal.Zero)
}

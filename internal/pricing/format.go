package pricing

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const currencyPrefix = "R$\u00a0"

// FormatCurrency renders value as Brazilian reais, e.g. "R$ 1.234,56" with a
// non-breaking space after the symbol. The zero value renders as "R$ 0,00".
func FormatCurrency(value decimal.Decimal) string {
	rounded := value.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	units, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		units = new(big.Int)
	}
	grouped := strings.ReplaceAll(humanize.BigComma(units), ",", ".")
	return sign + currencyPrefix + grouped + "," + cents
}

// ParseAmount coerces user or storage input into a decimal. Empty, missing
// and non-numeric input become 0. Both "1234.5" and pt-BR "1.234,50" are
// accepted.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

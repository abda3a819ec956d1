// Package pricing is the markup engine: pure functions that turn stored cost
// records into derived figures (unit cost, fixed-cost ratio, markup, sale
// price). Nothing in this package performs I/O or keeps state between calls,
// so every function is safe for concurrent use and always reflects the inputs
// it is given.
//
// Degenerate inputs never fail: a zero denominator or an infeasible rate sum
// yields 0, and callers treat a 0 markup as "cannot price this item".
package pricing

import (
	"errors"
	"fmt"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ErrInfeasibleRates is returned by MarkupStrict when the rates add up to
// 100% or more.
var ErrInfeasibleRates = errors.New("pricing: total rate must be below 100%")

// UnitCost returns totalValue/quantity, or 0 when quantity is 0.
func UnitCost(totalValue, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return totalValue.Div(quantity)
}

// FixedCostRatio returns totalFixedCosts/monthlyRevenue, or 0 when revenue
// is 0 or unset.
func FixedCostRatio(monthlyRevenue, totalFixedCosts decimal.Decimal) decimal.Decimal {
	if monthlyRevenue.IsZero() {
		return decimal.Zero
	}
	return totalFixedCosts.Div(monthlyRevenue)
}

// BOMLineCost is the cost of one bill-of-materials line.
func BOMLineCost(quantityUsed, unitCost decimal.Decimal) decimal.Decimal {
	return quantityUsed.Mul(unitCost)
}

// TotalRate adds the four fractions that feed the markup.
func TotalRate(taxRate, fixedCostRatio, otherFeesRate, marginRate decimal.Decimal) decimal.Decimal {
	return taxRate.Add(fixedCostRatio).Add(otherFeesRate).Add(marginRate)
}

// Markup returns 1/(1-total) for the given fractions, or 0 when
// total >= 1. The 0 is a sentinel, never a valid multiplier.
func Markup(taxRate, fixedCostRatio, otherFeesRate, marginRate decimal.Decimal) decimal.Decimal {
	m, err := MarkupStrict(taxRate, fixedCostRatio, otherFeesRate, marginRate)
	if err != nil {
		return decimal.Zero
	}
	return m
}

// MarkupStrict is Markup with an explicit infeasibility error in place of
// the 0 sentinel.
func MarkupStrict(taxRate, fixedCostRatio, otherFeesRate, marginRate decimal.Decimal) (decimal.Decimal, error) {
	total := TotalRate(taxRate, fixedCostRatio, otherFeesRate, marginRate)
	if total.GreaterThanOrEqual(one) {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrInfeasibleRates, total.Mul(hundred).StringFixed(2))
	}
	return one.Div(one.Sub(total)), nil
}

// SalePrice applies the markup to a base cost.
func SalePrice(baseCost, markup decimal.Decimal) decimal.Decimal {
	return baseCost.Mul(markup)
}

// SumFixedCosts adds up the monthly value of every fixed cost. Values that
// were missing or unparseable arrive here as zero and contribute nothing.
func SumFixedCosts(costs []domain.FixedCost) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(c.Value)
	}
	return total
}

// MaterialCostForProduct sums BOMLineCost over entries whose material still
// exists. Entries pointing at a missing material contribute 0.
func MaterialCostForProduct(entries []domain.BOMEntry, materialsByID map[string]domain.Material) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		m, ok := materialsByID[e.MaterialID]
		if !ok {
			continue
		}
		total = total.Add(BOMLineCost(e.QuantityUsed, UnitCost(m.TotalValue, m.Quantity)))
	}
	return total
}

// IndexMaterials keys materials by id.
func IndexMaterials(materials []domain.Material) map[string]domain.Material {
	idx := make(map[string]domain.Material, len(materials))
	for _, m := range materials {
		idx[m.ID] = m
	}
	return idx
}

// RateFromPercent converts a stored percentage (e.g. 6) into a fraction (0.06).
func RateFromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// Rates are the four fractions the markup is built from.
type Rates struct {
	Tax            decimal.Decimal
	FixedCostRatio decimal.Decimal
	OtherFees      decimal.Decimal
	Margin         decimal.Decimal
}

// RatesFromConfiguration derives the rates from a possibly absent
// configuration and the current fixed-cost total.
func RatesFromConfiguration(cfg *domain.Configuration, totalFixedCosts decimal.Decimal) Rates {
	if cfg == nil {
		return Rates{
			Tax:            decimal.Zero,
			FixedCostRatio: decimal.Zero,
			OtherFees:      decimal.Zero,
			Margin:         decimal.Zero,
		}
	}
	return Rates{
		Tax:            RateFromPercent(cfg.TaxRate),
		FixedCostRatio: FixedCostRatio(cfg.MonthlyRevenue, totalFixedCosts),
		OtherFees:      RateFromPercent(cfg.OtherFeesRate),
		Margin:         RateFromPercent(cfg.ProfitMargin),
	}
}

// Total is TotalRate over r.
func (r Rates) Total() decimal.Decimal {
	return TotalRate(r.Tax, r.FixedCostRatio, r.OtherFees, r.Margin)
}

// Markup is Markup over r.
func (r Rates) Markup() decimal.Decimal {
	return Markup(r.Tax, r.FixedCostRatio, r.OtherFees, r.Margin)
}

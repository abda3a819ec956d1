package pricing

import (
	"github.com/boddenberg/precifica-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

// UnknownProductName labels resale rows whose product no longer exists.
const UnknownProductName = "???"

// FixedCostAlertRatio is the fixed-cost ratio above which the dashboard warns.
var FixedCostAlertRatio = decimal.RequireFromString("0.3")

// BuildReport evaluates a snapshot into the figures shown on screen and
// embedded in exports. It is pure: the same snapshot always yields the same
// report.
func BuildReport(s domain.Snapshot) domain.PricingReport {
	summary := buildSummary(s)
	markup := summary.Markup
	feasible := summary.Feasible

	materialsByID := IndexMaterials(s.Materials)

	materials := make([]domain.MaterialCostRow, 0, len(s.Materials))
	for _, m := range s.Materials {
		materials = append(materials, domain.MaterialCostRow{
			MaterialID: m.ID,
			Name:       m.Name,
			Unit:       m.Unit,
			Quantity:   m.Quantity,
			TotalValue: m.TotalValue,
			UnitCost:   UnitCost(m.TotalValue, m.Quantity),
		})
	}

	entriesByProduct := make(map[string][]domain.BOMEntry, len(s.Products))
	for _, e := range s.BOMEntries {
		entriesByProduct[e.ProductID] = append(entriesByProduct[e.ProductID], e)
	}

	fabrication := make([]domain.FabricationRow, 0, len(s.Products))
	for _, p := range s.Products {
		entries := entriesByProduct[p.ID]
		cost := MaterialCostForProduct(entries, materialsByID)
		price := SalePrice(cost, markup)
		fabrication = append(fabrication, domain.FabricationRow{
			ProductID:    p.ID,
			ProductName:  p.Name,
			MaterialCost: cost,
			Markup:       markup,
			SalePrice:    price,
			Formatted:    FormatCurrency(price),
			Feasible:     feasible,
			BOMEntries:   len(entries),
		})
	}

	productNames := make(map[string]string, len(s.Products))
	for _, p := range s.Products {
		productNames[p.ID] = p.Name
	}

	resale := make([]domain.ResaleRow, 0, len(s.ResaleEntries))
	for _, r := range s.ResaleEntries {
		name, ok := productNames[r.ProductID]
		if !ok {
			name = UnknownProductName
		}
		price := SalePrice(r.PurchaseValue, markup)
		resale = append(resale, domain.ResaleRow{
			EntryID:       r.ID,
			ProductID:     r.ProductID,
			ProductName:   name,
			PurchaseValue: r.PurchaseValue,
			Markup:        markup,
			SalePrice:     price,
			Formatted:     FormatCurrency(price),
			Feasible:      feasible,
		})
	}

	fixedCosts := s.FixedCosts
	if fixedCosts == nil {
		fixedCosts = []domain.FixedCost{}
	}

	return domain.PricingReport{
		UserID:      s.UserID,
		Summary:     summary,
		FixedCosts:  fixedCosts,
		Materials:   materials,
		Fabrication: fabrication,
		Resale:      resale,
		GeneratedAt: s.LoadedAt,
	}
}

func buildSummary(s domain.Snapshot) domain.PricingSummary {
	totalFixed := SumFixedCosts(s.FixedCosts)
	rates := RatesFromConfiguration(s.Configuration, totalFixed)
	markup := rates.Markup()

	summary := domain.PricingSummary{
		TotalFixedCosts: totalFixed,
		FixedCostRatio:  rates.FixedCostRatio,
		TaxRate:         rates.Tax,
		OtherFeesRate:   rates.OtherFees,
		ProfitMargin:    rates.Margin,
		Markup:          markup,
		Feasible:        !markup.IsZero(),
		Configured:      s.Configuration != nil,
	}
	if s.Configuration != nil {
		summary.MonthlyRevenue = s.Configuration.MonthlyRevenue
	}
	return summary
}

// BuildDashboard evaluates only the summary block of a snapshot.
func BuildDashboard(s domain.Snapshot) domain.Dashboard {
	summary := buildSummary(s)

	totalMaterials := decimal.Zero
	for _, m := range s.Materials {
		totalMaterials = totalMaterials.Add(m.TotalValue)
	}

	return domain.Dashboard{
		UserID:              s.UserID,
		Summary:             summary,
		TotalMaterialsValue: totalMaterials,
		FixedCostAlert:      summary.FixedCostRatio.GreaterThan(FixedCostAlertRatio),
		Products:            len(s.Products),
		Materials:           len(s.Materials),
		GeneratedAt:         s.LoadedAt,
	}
}

// Simulate prices an arbitrary base cost under percentage rates, without
// touching any stored record.
func Simulate(req domain.SimulationRequest) domain.SimulationResponse {
	tax := RateFromPercent(req.TaxRate)
	fixed := RateFromPercent(req.FixedCostRate)
	other := RateFromPercent(req.OtherFeesRate)
	margin := RateFromPercent(req.ProfitMargin)

	markup := Markup(tax, fixed, other, margin)
	price := SalePrice(req.BaseCost, markup)

	return domain.SimulationResponse{
		TotalRate: TotalRate(tax, fixed, other, margin),
		Markup:    markup,
		SalePrice: price,
		Formatted: FormatCurrency(price),
		Feasible:  !markup.IsZero(),
	}
}

// Infeasible counts the priced rows that fell on the 0 markup sentinel.
func Infeasible(r domain.PricingReport) int {
	if r.Summary.Feasible {
		return 0
	}
	return len(r.Fabrication) + len(r.Resale)
}

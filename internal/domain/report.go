package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the full set of records of one user at load time. It is the
// only input the pricing report needs; nothing is shared between snapshots.
type Snapshot struct {
	UserID        string
	Configuration *Configuration // nil when the user never saved one
	FixedCosts    []FixedCost
	Materials     []Material
	Products      []Product
	BOMEntries    []BOMEntry
	ResaleEntries []ResaleEntry
	LoadedAt      time.Time
}

// ============================================================
// Pricing report (dashboard + fabrication + resale)
// ============================================================

// PricingSummary is the dashboard block.
type PricingSummary struct {
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	TotalFixedCosts decimal.Decimal `json:"totalFixedCosts"`
	FixedCostRatio  decimal.Decimal `json:"fixedCostRatio"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	OtherFeesRate   decimal.Decimal `json:"otherFeesRate"`
	ProfitMargin    decimal.Decimal `json:"profitMargin"`
	Markup          decimal.Decimal `json:"markup"`
	Feasible        bool            `json:"feasible"`
	Configured      bool            `json:"configured"`
}

// MaterialCostRow is a material with its derived unit cost.
type MaterialCostRow struct {
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
	UnitCost   decimal.Decimal `json:"unitCost"`
}

// FabricationRow prices a manufactured product from its bill of materials.
type FabricationRow struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	MaterialCost decimal.Decimal `json:"materialCost"`
	Markup       decimal.Decimal `json:"markup"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	Formatted    string          `json:"salePriceFormatted"`
	Feasible     bool            `json:"feasible"`
	BOMEntries   int             `json:"bomEntries"`
}

// ResaleRow prices a resale entry.
type ResaleRow struct {
	EntryID       string          `json:"entryId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
	Markup        decimal.Decimal `json:"markup"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Formatted     string          `json:"salePriceFormatted"`
	Feasible      bool            `json:"feasible"`
}

// PricingReport is what the presentation layer and export collaborators read.
type PricingReport struct {
	UserID      string            `json:"userId"`
	Summary     PricingSummary    `json:"summary"`
	FixedCosts  []FixedCost       `json:"fixedCosts"`
	Materials   []MaterialCostRow `json:"materials"`
	Fabrication []FabricationRow  `json:"fabrication"`
	Resale      []ResaleRow       `json:"resale"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// SimulationRequest is the body for POST /v1/pricing/simulate.
// Rates are percentages, like the stored configuration.
type SimulationRequest struct {
	BaseCost      decimal.Decimal `json:"baseCost"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	FixedCostRate decimal.Decimal `json:"fixedCostRate"`
	OtherFeesRate decimal.Decimal `json:"otherFeesRate"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
}

// SimulationResponse is the what-if result.
type SimulationResponse struct {
	TotalRate decimal.Decimal `json:"totalRate"`
	Markup    decimal.Decimal `json:"markup"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Formatted string          `json:"salePriceFormatted"`
	Feasible  bool            `json:"feasible"`
}

// Dashboard is the landing block: the pricing summary plus the two totals
// charted side by side and a warning when fixed costs eat too much revenue.
type Dashboard struct {
	UserID              string          `json:"userId"`
	Summary             PricingSummary  `json:"summary"`
	TotalMaterialsValue decimal.Decimal `json:"totalMaterialsValue"`
	FixedCostAlert      bool            `json:"fixedCostAlert"`
	Products            int             `json:"products"`
	Materials           int             `json:"materials"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Catalog: records owned by a single user
// ============================================================

// Configuration is the per-user pricing singleton. Rates are percentages
// (0–100); the pricing engine converts them to fractions.
type Configuration struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	OtherFeesRate  decimal.Decimal `json:"otherFeesRate"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
}

// FixedCost is a recurring monthly expense.
type FixedCost struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// Material (insumo) is a raw input bought in bulk. Its unit cost is derived
// from TotalValue / Quantity and never stored.
type Material struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// Product is something the user manufactures or resells.
type Product struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// BOMEntry (ficha técnica) links a product to a material with the quantity used.
type BOMEntry struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	ProductID    string          `json:"productId"`
	MaterialID   string          `json:"materialId"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}

// ResaleEntry prices a finished item bought for resale.
type ResaleEntry struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	ProductID     string          `json:"productId"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
}

// ============================================================
// Request bodies (API contract)
// ============================================================

// ConfigurationRequest is the body for PUT /v1/config.
type ConfigurationRequest struct {
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	OtherFeesRate  decimal.Decimal `json:"otherFeesRate"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
}

// FixedCostRequest is the body for POST/PUT /v1/fixed-costs.
type FixedCostRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// MaterialRequest is the body for POST/PUT /v1/materials.
type MaterialRequest struct {
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ProductRequest is the body for POST/PUT /v1/products.
type ProductRequest struct {
	Name string `json:"name"`
}

// BOMEntryRequest is the body for POST/PUT /v1/bom-entries.
type BOMEntryRequest struct {
	ProductID    string          `json:"productId"`
	MaterialID   string          `json:"materialId"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
}

// ResaleEntryRequest is the body for POST/PUT /v1/resale-entries.
type ResaleEntryRequest struct {
	ProductID     string          `json:"productId"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
}

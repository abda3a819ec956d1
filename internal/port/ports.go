// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete persistence backend (Supabase or SQLite).
package port

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// CatalogStore defines every data operation on the pricing records.
// All methods are scoped by userID; a record owned by another user behaves
// as if it did not exist.
type CatalogStore interface {
	// Configuration (singleton per user; nil, nil when absent)
	GetConfiguration(ctx context.Context, userID string) (*domain.Configuration, error)
	InsertConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error)
	UpdateConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error)

	// Fixed costs
	ListFixedCosts(ctx context.Context, userID string) ([]domain.FixedCost, error)
	CreateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error)
	UpdateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error)
	DeleteFixedCost(ctx context.Context, userID, id string) error

	// Materials (insumos)
	ListMaterials(ctx context.Context, userID string) ([]domain.Material, error)
	GetMaterial(ctx context.Context, userID, id string) (*domain.Material, error)
	CreateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, userID, id string) error

	// Products
	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, userID, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, userID, id string) error

	// Bill of materials (ficha técnica)
	ListBOMEntries(ctx context.Context, userID string) ([]domain.BOMEntry, error)
	CreateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error)
	UpdateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error)
	DeleteBOMEntry(ctx context.Context, userID, id string) error
	DeleteBOMEntriesByProduct(ctx context.Context, userID, productID string) error
	DeleteBOMEntriesByMaterial(ctx context.Context, userID, materialID string) error

	// Resale pricing (precificação revenda)
	ListResaleEntries(ctx context.Context, userID string) ([]domain.ResaleEntry, error)
	CreateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error)
	UpdateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error)
	DeleteResaleEntry(ctx context.Context, userID, id string) error
	DeleteResaleEntriesByProduct(ctx context.Context, userID, productID string) error
}

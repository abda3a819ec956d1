package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Produtos
// ============================================================

const tableProducts = "produtos"

type productRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Nome      string    `json:"nome"`
	CreatedAt timestamp `json:"created_at"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Nome,
		CreatedAt: r.CreatedAt.value(),
	}
}

func (c *Client) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProducts")
	defer span.End()

	path := ownerFilter(tableProducts, userID, "order=nome.asc")
	return listRows(ctx, c, "list_products", tableProducts, path, productRow.toDomain)
}

func (c *Client) GetProduct(ctx context.Context, userID, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProduct")
	defer span.End()

	path := ownerFilter(tableProducts, userID, eq("id", id), "limit=1")
	return getRow(ctx, c, "get_product", tableProducts, path, "product", id, productRow.toDomain)
}

func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProduct")
	defer span.End()

	data := map[string]any{
		"id":      p.ID,
		"user_id": p.UserID,
		"nome":    p.Name,
	}
	saved, err := insertRow(ctx, c, "create_product", tableProducts, data, productRow.toDomain)
	if err != nil || saved != nil {
		return saved, err
	}
	copied := *p
	return &copied, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProduct")
	defer span.End()

	path := ownerFilter(tableProducts, p.UserID, eq("id", p.ID))
	data := map[string]any{"nome": p.Name}
	return updateRow(ctx, c, "update_product", tableProducts, path, "product", p.ID, data, productRow.toDomain)
}

func (c *Client) DeleteProduct(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProduct")
	defer span.End()

	path := ownerFilter(tableProducts, userID, eq("id", id))
	return deleteRows(ctx, c, "delete_product", tableProducts, path, "product", id)
}

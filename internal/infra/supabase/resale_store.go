package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Precificação revenda: items bought for resale
// ============================================================

const tableResale = "precificacao_revenda"

type resaleRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProdutoID   string    `json:"produto_id"`
	ValorCompra amount    `json:"valor_compra"`
	CreatedAt   timestamp `json:"created_at"`
}

func (r resaleRow) toDomain() domain.ResaleEntry {
	return domain.ResaleEntry{
		ID:            r.ID,
		UserID:        r.UserID,
		ProductID:     r.ProdutoID,
		PurchaseValue: r.ValorCompra.value(),
		CreatedAt:     r.CreatedAt.value(),
	}
}

func resalePayload(e *domain.ResaleEntry) map[string]any {
	return map[string]any{
		"produto_id":   e.ProductID,
		"valor_compra": money(e.PurchaseValue),
	}
}

func (c *Client) ListResaleEntries(ctx context.Context, userID string) ([]domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListResaleEntries")
	defer span.End()

	path := ownerFilter(tableResale, userID, "order=created_at.asc")
	return listRows(ctx, c, "list_resale_entries", tableResale, path, resaleRow.toDomain)
}

func (c *Client) CreateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateResaleEntry")
	defer span.End()

	data := resalePayload(e)
	data["id"] = e.ID
	data["user_id"] = e.UserID

	saved, err := insertRow(ctx, c, "create_resale_entry", tableResale, data, resaleRow.toDomain)
	if err != nil || saved != nil {
		return saved, err
	}
	copied := *e
	return &copied, nil
}

func (c *Client) UpdateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateResaleEntry")
	defer span.End()

	path := ownerFilter(tableResale, e.UserID, eq("id", e.ID))
	return updateRow(ctx, c, "update_resale_entry", tableResale, path, "resale_entry", e.ID, resalePayload(e), resaleRow.toDomain)
}

func (c *Client) DeleteResaleEntry(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteResaleEntry")
	defer span.End()

	path := ownerFilter(tableResale, userID, eq("id", id))
	return deleteRows(ctx, c, "delete_resale_entry", tableResale, path, "resale_entry", id)
}

func (c *Client) DeleteResaleEntriesByProduct(ctx context.Context, userID, productID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteResaleEntriesByProduct")
	defer span.End()

	path := ownerFilter(tableResale, userID, eq("produto_id", productID))
	return deleteRows(ctx, c, "delete_resale_by_product", tableResale, path, "", productID)
}

package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Ficha técnica: bill of materials per product
// ============================================================

const tableBOM = "ficha_tecnica"

type bomRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProdutoID  string    `json:"produto_id"`
	InsumoID   string    `json:"insumo_id"`
	Quantidade amount    `json:"quantidade"`
	CreatedAt  timestamp `json:"created_at"`
}

func (r bomRow) toDomain() domain.BOMEntry {
	return domain.BOMEntry{
		ID:           r.ID,
		UserID:       r.UserID,
		ProductID:    r.ProdutoID,
		MaterialID:   r.InsumoID,
		QuantityUsed: r.Quantidade.value(),
		CreatedAt:    r.CreatedAt.value(),
	}
}

func bomPayload(e *domain.BOMEntry) map[string]any {
	return map[string]any{
		"produto_id": e.ProductID,
		"insumo_id":  e.MaterialID,
		"quantidade": money(e.QuantityUsed),
	}
}

func (c *Client) ListBOMEntries(ctx context.Context, userID string) ([]domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListBOMEntries")
	defer span.End()

	path := ownerFilter(tableBOM, userID, "order=created_at.asc")
	return listRows(ctx, c, "list_bom_entries", tableBOM, path, bomRow.toDomain)
}

func (c *Client) CreateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateBOMEntry")
	defer span.End()

	data := bomPayload(e)
	data["id"] = e.ID
	data["user_id"] = e.UserID

	saved, err := insertRow(ctx, c, "create_bom_entry", tableBOM, data, bomRow.toDomain)
	if err != nil || saved != nil {
		return saved, err
	}
	copied := *e
	return &copied, nil
}

func (c *Client) UpdateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateBOMEntry")
	defer span.End()

	path := ownerFilter(tableBOM, e.UserID, eq("id", e.ID))
	return updateRow(ctx, c, "update_bom_entry", tableBOM, path, "bom_entry", e.ID, bomPayload(e), bomRow.toDomain)
}

func (c *Client) DeleteBOMEntry(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBOMEntry")
	defer span.End()

	path := ownerFilter(tableBOM, userID, eq("id", id))
	return deleteRows(ctx, c, "delete_bom_entry", tableBOM, path, "bom_entry", id)
}

func (c *Client) DeleteBOMEntriesByProduct(ctx context.Context, userID, productID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBOMEntriesByProduct")
	defer span.End()

	path := ownerFilter(tableBOM, userID, eq("produto_id", productID))
	return deleteRows(ctx, c, "delete_bom_by_product", tableBOM, path, "", productID)
}

func (c *Client) DeleteBOMEntriesByMaterial(ctx context.Context, userID, materialID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBOMEntriesByMaterial")
	defer span.End()

	path := ownerFilter(tableBOM, userID, eq("insumo_id", materialID))
	return deleteRows(ctx, c, "delete_bom_by_material", tableBOM, path, "", materialID)
}

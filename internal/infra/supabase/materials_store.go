package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Insumos: raw materials bought in bulk
// ============================================================

const tableMaterials = "insumos"

type materialRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Nome       string    `json:"nome"`
	Unidade    string    `json:"unidade"`
	Quantidade amount    `json:"quantidade"`
	ValorTotal amount    `json:"valor_total"`
	CreatedAt  timestamp `json:"created_at"`
}

func (r materialRow) toDomain() domain.Material {
	return domain.Material{
		ID:         r.ID,
		UserID:     r.UserID,
		Name:       r.Nome,
		Unit:       r.Unidade,
		Quantity:   r.Quantidade.value(),
		TotalValue: r.ValorTotal.value(),
		CreatedAt:  r.CreatedAt.value(),
	}
}

func materialPayload(m *domain.Material) map[string]any {
	return map[string]any{
		"nome":        m.Name,
		"unidade":     m.Unit,
		"quantidade":  money(m.Quantity),
		"valor_total": money(m.TotalValue),
	}
}

func (c *Client) ListMaterials(ctx context.Context, userID string) ([]domain.Material, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListMaterials")
	defer span.End()

	path := ownerFilter(tableMaterials, userID, "order=nome.asc")
	return listRows(ctx, c, "list_materials", tableMaterials, path, materialRow.toDomain)
}

func (c *Client) GetMaterial(ctx context.Context, userID, id string) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetMaterial")
	defer span.End()

	path := ownerFilter(tableMaterials, userID, eq("id", id), "limit=1")
	return getRow(ctx, c, "get_material", tableMaterials, path, "material", id, materialRow.toDomain)
}

func (c *Client) CreateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateMaterial")
	defer span.End()

	data := materialPayload(m)
	data["id"] = m.ID
	data["user_id"] = m.UserID

	saved, err := insertRow(ctx, c, "create_material", tableMaterials, data, materialRow.toDomain)
	if err != nil || saved != nil {
		return saved, err
	}
	copied := *m
	return &copied, nil
}

func (c *Client) UpdateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateMaterial")
	defer span.End()

	path := ownerFilter(tableMaterials, m.UserID, eq("id", m.ID))
	return updateRow(ctx, c, "update_material", tableMaterials, path, "material", m.ID, materialPayload(m), materialRow.toDomain)
}

func (c *Client) DeleteMaterial(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteMaterial")
	defer span.End()

	path := ownerFilter(tableMaterials, userID, eq("id", id))
	return deleteRows(ctx, c, "delete_material", tableMaterials, path, "material", id)
}

package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Custos fixos: recurring monthly expenses
// ============================================================

const tableFixedCosts = "custos_fixos"

type fixedCostRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Descricao string    `json:"descricao"`
	Valor     amount    `json:"valor"`
	CreatedAt timestamp `json:"created_at"`
}

func (r fixedCostRow) toDomain() domain.FixedCost {
	return domain.FixedCost{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Descricao,
		Value:       r.Valor.value(),
		CreatedAt:   r.CreatedAt.value(),
	}
}

func (c *Client) ListFixedCosts(ctx context.Context, userID string) ([]domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListFixedCosts")
	defer span.End()

	path := ownerFilter(tableFixedCosts, userID, "order=created_at.asc")
	return listRows(ctx, c, "list_fixed_costs", tableFixedCosts, path, fixedCostRow.toDomain)
}

func (c *Client) CreateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateFixedCost")
	defer span.End()

	data := map[string]any{
		"id":        fc.ID,
		"user_id":   fc.UserID,
		"descricao": fc.Description,
		"valor":     money(fc.Value),
	}
	saved, err := insertRow(ctx, c, "create_fixed_cost", tableFixedCosts, data, fixedCostRow.toDomain)
	if err != nil || saved != nil {
		return saved, err
	}
	copied := *fc
	return &copied, nil
}

func (c *Client) UpdateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateFixedCost")
	defer span.End()

	data := map[string]any{
		"descricao": fc.Description,
		"valor":     money(fc.Value),
	}
	path := ownerFilter(tableFixedCosts, fc.UserID, eq("id", fc.ID))
	return updateRow(ctx, c, "update_fixed_cost", tableFixedCosts, path, "fixed_cost", fc.ID, data, fixedCostRow.toDomain)
}

func (c *Client) DeleteFixedCost(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteFixedCost")
	defer span.End()

	path := ownerFilter(tableFixedCosts, userID, eq("id", id))
	return deleteRows(ctx, c, "delete_fixed_cost", tableFixedCosts, path, "fixed_cost", id)
}

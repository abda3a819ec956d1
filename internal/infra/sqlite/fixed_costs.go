package sqlite

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

func scanFixedCost(row scanner) (domain.FixedCost, error) {
	var (
		fc      domain.FixedCost
		created string
	)
	err := row.Scan(&fc.ID, &fc.UserID, &fc.Description, &fc.Value, &created)
	fc.CreatedAt = parseTime(created)
	return fc, err
}

func (s *Store) ListFixedCosts(ctx context.Context, userID string) ([]domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "SQLite.ListFixedCosts")
	defer span.End()

	out, err := queryAll(ctx, s.db, `
		SELECT id, user_id, descricao, valor, created_at
		FROM custos_fixos WHERE user_id = ?
		ORDER BY created_at, id`, scanFixedCost, userID)
	return out, s.wrap("list_fixed_costs", err)
}

func (s *Store) CreateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "SQLite.CreateFixedCost")
	defer span.End()

	saved := *fc
	saved.ID, saved.CreatedAt = s.stamp(fc.ID, fc.CreatedAt)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custos_fixos (id, user_id, descricao, valor, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.Description, saved.Value, formatTime(saved.CreatedAt),
	)
	if err != nil {
		return nil, s.wrap("create_fixed_cost", err)
	}
	return &saved, nil
}

func (s *Store) UpdateFixedCost(ctx context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateFixedCost")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE custos_fixos SET descricao = ?, valor = ?
		WHERE id = ? AND user_id = ?`,
		fc.Description, fc.Value, fc.ID, fc.UserID,
	)
	if err == nil {
		err = expectOne(res, "fixed_cost", fc.ID)
	}
	if err != nil {
		return nil, s.wrap("update_fixed_cost", err)
	}

	saved, err := queryOne(ctx, s.db, "fixed_cost", fc.ID, `
		SELECT id, user_id, descricao, valor, created_at
		FROM custos_fixos WHERE id = ? AND user_id = ?`, scanFixedCost, fc.ID, fc.UserID)
	return saved, s.wrap("update_fixed_cost", err)
}

func (s *Store) DeleteFixedCost(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteFixedCost")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM custos_fixos WHERE id = ? AND user_id = ?`, id, userID)
	if err == nil {
		err = expectOne(res, "fixed_cost", id)
	}
	return s.wrap("delete_fixed_cost", err)
}

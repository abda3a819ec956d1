package sqlite

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

const selectMaterial = `
	SELECT id, user_id, nome, unidade, quantidade, valor_total, created_at
	FROM insumos`

func scanMaterial(row scanner) (domain.Material, error) {
	var (
		m       domain.Material
		created string
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Unit, &m.Quantity, &m.TotalValue, &created)
	m.CreatedAt = parseTime(created)
	return m, err
}

func (s *Store) ListMaterials(ctx context.Context, userID string) ([]domain.Material, error) {
	ctx, span := tracer.Start(ctx, "SQLite.ListMaterials")
	defer span.End()

	out, err := queryAll(ctx, s.db, selectMaterial+` WHERE user_id = ? ORDER BY nome, id`, scanMaterial, userID)
	return out, s.wrap("list_materials", err)
}

func (s *Store) GetMaterial(ctx context.Context, userID, id string) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "SQLite.GetMaterial")
	defer span.End()

	m, err := queryOne(ctx, s.db, "material", id, selectMaterial+` WHERE id = ? AND user_id = ?`, scanMaterial, id, userID)
	return m, s.wrap("get_material", err)
}

func (s *Store) CreateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "SQLite.CreateMaterial")
	defer span.End()

	saved := *m
	saved.ID, saved.CreatedAt = s.stamp(m.ID, m.CreatedAt)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO insumos (id, user_id, nome, unidade, quantidade, valor_total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.Name, saved.Unit, saved.Quantity, saved.TotalValue, formatTime(saved.CreatedAt),
	)
	if err != nil {
		return nil, s.wrap("create_material", err)
	}
	return &saved, nil
}

func (s *Store) UpdateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateMaterial")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE insumos SET nome = ?, unidade = ?, quantidade = ?, valor_total = ?
		WHERE id = ? AND user_id = ?`,
		m.Name, m.Unit, m.Quantity, m.TotalValue, m.ID, m.UserID,
	)
	if err == nil {
		err = expectOne(res, "material", m.ID)
	}
	if err != nil {
		return nil, s.wrap("update_material", err)
	}
	return s.GetMaterial(ctx, m.UserID, m.ID)
}

func (s *Store) DeleteMaterial(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteMaterial")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM insumos WHERE id = ? AND user_id = ?`, id, userID)
	if err == nil {
		err = expectOne(res, "material", id)
	}
	return s.wrap("delete_material", err)
}

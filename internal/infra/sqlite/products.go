package sqlite

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

const selectProduct = `SELECT id, user_id, nome, created_at FROM produtos`

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p       domain.Product
		created string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &created)
	p.CreatedAt = parseTime(created)
	return p, err
}

func (s *Store) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "SQLite.ListProducts")
	defer span.End()

	out, err := queryAll(ctx, s.db, selectProduct+` WHERE user_id = ? ORDER BY nome, id`, scanProduct, userID)
	return out, s.wrap("list_products", err)
}

func (s *Store) GetProduct(ctx context.Context, userID, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "SQLite.GetProduct")
	defer span.End()

	p, err := queryOne(ctx, s.db, "product", id, selectProduct+` WHERE id = ? AND user_id = ?`, scanProduct, id, userID)
	return p, s.wrap("get_product", err)
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "SQLite.CreateProduct")
	defer span.End()

	saved := *p
	saved.ID, saved.CreatedAt = s.stamp(p.ID, p.CreatedAt)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO produtos (id, user_id, nome, created_at) VALUES (?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.Name, formatTime(saved.CreatedAt),
	)
	if err != nil {
		return nil, s.wrap("create_product", err)
	}
	return &saved, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateProduct")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `UPDATE produtos SET nome = ? WHERE id = ? AND user_id = ?`, p.Name, p.ID, p.UserID)
	if err == nil {
		err = expectOne(res, "product", p.ID)
	}
	if err != nil {
		return nil, s.wrap("update_product", err)
	}
	return s.GetProduct(ctx, p.UserID, p.ID)
}

func (s *Store) DeleteProduct(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteProduct")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM produtos WHERE id = ? AND user_id = ?`, id, userID)
	if err == nil {
		err = expectOne(res, "product", id)
	}
	return s.wrap("delete_product", err)
}

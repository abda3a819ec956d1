package sqlite

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Ficha técnica
// ============================================================

const selectBOMEntry = `
	SELECT id, user_id, produto_id, insumo_id, quantidade, created_at
	FROM ficha_tecnica`

func scanBOMEntry(row scanner) (domain.BOMEntry, error) {
	var (
		e       domain.BOMEntry
		created string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ProductID, &e.MaterialID, &e.QuantityUsed, &created)
	e.CreatedAt = parseTime(created)
	return e, err
}

func (s *Store) ListBOMEntries(ctx context.Context, userID string) ([]domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.ListBOMEntries")
	defer span.End()

	out, err := queryAll(ctx, s.db, selectBOMEntry+` WHERE user_id = ? ORDER BY created_at, id`, scanBOMEntry, userID)
	return out, s.wrap("list_bom_entries", err)
}

func (s *Store) CreateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.CreateBOMEntry")
	defer span.End()

	saved := *e
	saved.ID, saved.CreatedAt = s.stamp(e.ID, e.CreatedAt)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ficha_tecnica (id, user_id, produto_id, insumo_id, quantidade, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.ProductID, saved.MaterialID, saved.QuantityUsed, formatTime(saved.CreatedAt),
	)
	if err != nil {
		return nil, s.wrap("create_bom_entry", err)
	}
	return &saved, nil
}

func (s *Store) UpdateBOMEntry(ctx context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateBOMEntry")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE ficha_tecnica SET produto_id = ?, insumo_id = ?, quantidade = ?
		WHERE id = ? AND user_id = ?`,
		e.ProductID, e.MaterialID, e.QuantityUsed, e.ID, e.UserID,
	)
	if err == nil {
		err = expectOne(res, "bom_entry", e.ID)
	}
	if err != nil {
		return nil, s.wrap("update_bom_entry", err)
	}

	saved, err := queryOne(ctx, s.db, "bom_entry", e.ID, selectBOMEntry+` WHERE id = ? AND user_id = ?`, scanBOMEntry, e.ID, e.UserID)
	return saved, s.wrap("update_bom_entry", err)
}

func (s *Store) DeleteBOMEntry(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteBOMEntry")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM ficha_tecnica WHERE id = ? AND user_id = ?`, id, userID)
	if err == nil {
		err = expectOne(res, "bom_entry", id)
	}
	return s.wrap("delete_bom_entry", err)
}

func (s *Store) DeleteBOMEntriesByProduct(ctx context.Context, userID, productID string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteBOMEntriesByProduct")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM ficha_tecnica WHERE produto_id = ? AND user_id = ?`, productID, userID)
	return s.wrap("delete_bom_by_product", err)
}

func (s *Store) DeleteBOMEntriesByMaterial(ctx context.Context, userID, materialID string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteBOMEntriesByMaterial")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM ficha_tecnica WHERE insumo_id = ? AND user_id = ?`, materialID, userID)
	return s.wrap("delete_bom_by_material", err)
}

// ============================================================
// Precificação revenda
// ============================================================

const selectResaleEntry = `
	SELECT id, user_id, produto_id, valor_compra, created_at
	FROM precificacao_revenda`

func scanResaleEntry(row scanner) (domain.ResaleEntry, error) {
	var (
		e       domain.ResaleEntry
		created string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ProductID, &e.PurchaseValue, &created)
	e.CreatedAt = parseTime(created)
	return e, err
}

func (s *Store) ListResaleEntries(ctx context.Context, userID string) ([]domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.ListResaleEntries")
	defer span.End()

	out, err := queryAll(ctx, s.db, selectResaleEntry+` WHERE user_id = ? ORDER BY created_at, id`, scanResaleEntry, userID)
	return out, s.wrap("list_resale_entries", err)
}

func (s *Store) CreateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.CreateResaleEntry")
	defer span.End()

	saved := *e
	saved.ID, saved.CreatedAt = s.stamp(e.ID, e.CreatedAt)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO precificacao_revenda (id, user_id, produto_id, valor_compra, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.ProductID, saved.PurchaseValue, formatTime(saved.CreatedAt),
	)
	if err != nil {
		return nil, s.wrap("create_resale_entry", err)
	}
	return &saved, nil
}

func (s *Store) UpdateResaleEntry(ctx context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateResaleEntry")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE precificacao_revenda SET produto_id = ?, valor_compra = ?
		WHERE id = ? AND user_id = ?`,
		e.ProductID, e.PurchaseValue, e.ID, e.UserID,
	)
	if err == nil {
		err = expectOne(res, "resale_entry", e.ID)
	}
	if err != nil {
		return nil, s.wrap("update_resale_entry", err)
	}

	saved, err := queryOne(ctx, s.db, "resale_entry", e.ID, selectResaleEntry+` WHERE id = ? AND user_id = ?`, scanResaleEntry, e.ID, e.UserID)
	return saved, s.wrap("update_resale_entry", err)
}

func (s *Store) DeleteResaleEntry(ctx context.Context, userID, id string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteResaleEntry")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `DELETE FROM precificacao_revenda WHERE id = ? AND user_id = ?`, id, userID)
	if err == nil {
		err = expectOne(res, "resale_entry", id)
	}
	return s.wrap("delete_resale_entry", err)
}

func (s *Store) DeleteResaleEntriesByProduct(ctx context.Context, userID, productID string) error {
	ctx, span := tracer.Start(ctx, "SQLite.DeleteResaleEntriesByProduct")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM precificacao_revenda WHERE produto_id = ? AND user_id = ?`, productID, userID)
	return s.wrap("delete_resale_by_product", err)
}

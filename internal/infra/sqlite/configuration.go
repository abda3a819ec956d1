package sqlite

import (
	"context"
	"errors"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

const selectConfiguration = `
	SELECT id, user_id, faturamento_mensal, taxa_impostos, outras_taxas, margem_lucro
	FROM configuracoes`

func scanConfiguration(row scanner) (domain.Configuration, error) {
	var c domain.Configuration
	err := row.Scan(&c.ID, &c.UserID, &c.MonthlyRevenue, &c.TaxRate, &c.OtherFeesRate, &c.ProfitMargin)
	return c, err
}

func (s *Store) GetConfiguration(ctx context.Context, userID string) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "SQLite.GetConfiguration")
	defer span.End()

	cfg, err := queryOne(ctx, s.db, "configuration", userID,
		selectConfiguration+` WHERE user_id = ?`, scanConfiguration, userID)
	var nf *domain.ErrNotFound
	if errors.As(err, &nf) {
		return nil, nil
	}
	return cfg, s.wrap("get_configuration", err)
}

func (s *Store) InsertConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "SQLite.InsertConfiguration")
	defer span.End()

	saved := *cfg
	saved.ID, _ = s.stamp(cfg.ID, s.now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO configuracoes (id, user_id, faturamento_mensal, taxa_impostos, outras_taxas, margem_lucro)
		VALUES (?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.MonthlyRevenue, saved.TaxRate, saved.OtherFeesRate, saved.ProfitMargin,
	)
	if err != nil {
		return nil, s.wrap("insert_configuration", err)
	}
	return &saved, nil
}

func (s *Store) UpdateConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "SQLite.UpdateConfiguration")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE configuracoes
		SET faturamento_mensal = ?, taxa_impostos = ?, outras_taxas = ?, margem_lucro = ?
		WHERE id = ? AND user_id = ?`,
		cfg.MonthlyRevenue, cfg.TaxRate, cfg.OtherFeesRate, cfg.ProfitMargin, cfg.ID, cfg.UserID,
	)
	if err == nil {
		err = expectOne(res, "configuration", cfg.ID)
	}
	if err != nil {
		return nil, s.wrap("update_configuration", err)
	}
	saved := *cfg
	return &saved, nil
}

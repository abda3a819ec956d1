package supabase

import (
	"context"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Configuração: one row per user
// ============================================================

const tableConfiguration = "configuracoes"

type configurationRow struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	FaturamentoMensal amount `json:"faturamento_mensal"`
	TaxaImpostos      amount `json:"taxa_impostos"`
	OutrasTaxas       amount `json:"outras_taxas"`
	MargemLucro       amount `json:"margem_lucro"`
}

func (r configurationRow) toDomain() domain.Configuration {
	return domain.Configuration{
		ID:             r.ID,
		UserID:         r.UserID,
		MonthlyRevenue: r.FaturamentoMensal.value(),
		TaxRate:        r.TaxaImpostos.value(),
		OtherFeesRate:  r.OutrasTaxas.value(),
		ProfitMargin:   r.MargemLucro.value(),
	}
}

func configurationPayload(cfg *domain.Configuration) map[string]any {
	return map[string]any{
		"faturamento_mensal": money(cfg.MonthlyRevenue),
		"taxa_impostos":      money(cfg.TaxRate),
		"outras_taxas":       money(cfg.OtherFeesRate),
		"margem_lucro":       money(cfg.ProfitMargin),
	}
}

// GetConfiguration returns the user's configuration, or nil when none was
// saved yet.
func (c *Client) GetConfiguration(ctx context.Context, userID string) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetConfiguration")
	defer span.End()

	rows, err := listRows(ctx, c, "get_configuration", tableConfiguration,
		ownerFilter(tableConfiguration, userID, "order=id.asc", "limit=1"), configurationRow.toDomain)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) InsertConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.InsertConfiguration")
	defer span.End()

	data := configurationPayload(cfg)
	data["id"] = cfg.ID
	data["user_id"] = cfg.UserID

	saved, err := insertRow(ctx, c, "insert_configuration", tableConfiguration, data, configurationRow.toDomain)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		copied := *cfg
		return &copied, nil
	}
	return saved, nil
}

func (c *Client) UpdateConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateConfiguration")
	defer span.End()

	path := ownerFilter(tableConfiguration, cfg.UserID, eq("id", cfg.ID))
	return updateRow(ctx, c, "update_configuration", tableConfiguration, path, "configuration", cfg.ID,
		configurationPayload(cfg), configurationRow.toDomain)
}

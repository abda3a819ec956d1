package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var catalogTracer = otel.Tracer("service/catalog")

// CatalogService manages the records the pricing engine reads: the
// configuration singleton, fixed costs, materials, products, bill-of-materials
// lines and resale entries. Every call is scoped to one user.
type CatalogService struct {
	store   port.CatalogStore
	metrics *observability.Metrics
	logger  *zap.Logger
	newID   func() string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store port.CatalogStore, metrics *observability.Metrics, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		metrics: metrics,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
}

func (s *CatalogService) mutated(entity, action, userID, id string) {
	s.metrics.IncrMutation(entity, action)
	s.logger.Info("catalog "+action,
		zap.String("entity", entity),
		zap.String("user_id", userID),
		zap.String("id", id),
	)
}

// ============================================================
// Configuration
// ============================================================

// GetConfiguration returns the user's configuration. A user who never saved
// one gets a zero-valued configuration without an id.
func (s *CatalogService) GetConfiguration(ctx context.Context, userID string) (cfg *domain.Configuration, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.GetConfiguration")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))
	defer func(start time.Time) { finish(s.metrics, span, "catalog.get_configuration", start, err) }(time.Now())

	cfg, err = s.store.GetConfiguration(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &domain.Configuration{UserID: userID}, nil
	}
	return cfg, nil
}

// SaveConfiguration updates the user's configuration, creating it on first save.
func (s *CatalogService) SaveConfiguration(ctx context.Context, userID string, req *domain.ConfigurationRequest) (cfg *domain.Configuration, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.SaveConfiguration")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))
	defer func(start time.Time) { finish(s.metrics, span, "catalog.save_configuration", start, err) }(time.Now())

	if err := nonNegative("monthlyRevenue", req.MonthlyRevenue); err != nil {
		return nil, err
	}
	if err := percent("taxRate", req.TaxRate); err != nil {
		return nil, err
	}
	if err := percent("otherFeesRate", req.OtherFeesRate); err != nil {
		return nil, err
	}
	if err := percent("profitMargin", req.ProfitMargin); err != nil {
		return nil, err
	}

	existing, err := s.store.GetConfiguration(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := &domain.Configuration{
		UserID:         userID,
		MonthlyRevenue: req.MonthlyRevenue,
		TaxRate:        req.TaxRate,
		OtherFeesRate:  req.OtherFeesRate,
		ProfitMargin:   req.ProfitMargin,
	}
	if existing != nil {
		next.ID = existing.ID
		cfg, err = s.store.UpdateConfiguration(ctx, next)
		if err != nil {
			return nil, err
		}
		s.mutated("configuration", "update", userID, cfg.ID)
		return cfg, nil
	}

	next.ID = s.newID()
	cfg, err = s.store.InsertConfiguration(ctx, next)
	if err != nil {
		return nil, err
	}
	s.mutated("configuration", "create", userID, cfg.ID)
	return cfg, nil
}

// ============================================================
// Fixed costs
// ============================================================

func (s *CatalogService) ListFixedCosts(ctx context.Context, userID string) (out []domain.FixedCost, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.ListFixedCosts")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.list_fixed_costs", start, err) }(time.Now())

	return s.store.ListFixedCosts(ctx, userID)
}

func validateFixedCost(req *domain.FixedCostRequest) (string, error) {
	desc, err := requireText("description", req.Description)
	if err != nil {
		return "", err
	}
	return desc, nonNegative("value", req.Value)
}

func (s *CatalogService) CreateFixedCost(ctx context.Context, userID string, req *domain.FixedCostRequest) (fc *domain.FixedCost, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateFixedCost")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.create_fixed_cost", start, err) }(time.Now())

	desc, err := validateFixedCost(req)
	if err != nil {
		return nil, err
	}
	fc, err = s.store.CreateFixedCost(ctx, &domain.FixedCost{
		ID:          s.newID(),
		UserID:      userID,
		Description: desc,
		Value:       req.Value,
	})
	if err != nil {
		return nil, err
	}
	s.mutated("fixed_cost", "create", userID, fc.ID)
	return fc, nil
}

func (s *CatalogService) UpdateFixedCost(ctx context.Context, userID, id string, req *domain.FixedCostRequest) (fc *domain.FixedCost, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateFixedCost")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.update_fixed_cost", start, err) }(time.Now())

	desc, err := validateFixedCost(req)
	if err != nil {
		return nil, err
	}
	fc, err = s.store.UpdateFixedCost(ctx, &domain.FixedCost{
		ID:          id,
		UserID:      userID,
		Description: desc,
		Value:       req.Value,
	})
	if err != nil {
		return nil, err
	}
	s.mutated("fixed_cost", "update", userID, id)
	return fc, nil
}

func (s *CatalogService) DeleteFixedCost(ctx context.Context, userID, id string) (err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteFixedCost")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.delete_fixed_cost", start, err) }(time.Now())

	if err := s.store.DeleteFixedCost(ctx, userID, id); err != nil {
		return err
	}
	s.mutated("fixed_cost", "delete", userID, id)
	return nil
}

// ============================================================
// Materials
// ============================================================

func (s *CatalogService) ListMaterials(ctx context.Context, userID string) (out []domain.Material, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.ListMaterials")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.list_materials", start, err) }(time.Now())

	return s.store.ListMaterials(ctx, userID)
}

func buildMaterial(userID, id string, req *domain.MaterialRequest) (*domain.Material, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("quantity", req.Quantity); err != nil {
		return nil, err
	}
	if err := nonNegative("totalValue", req.TotalValue); err != nil {
		return nil, err
	}
	return &domain.Material{
		ID:         id,
		UserID:     userID,
		Name:       name,
		Unit:       req.Unit,
		Quantity:   req.Quantity,
		TotalValue: req.TotalValue,
	}, nil
}

func (s *CatalogService) CreateMaterial(ctx context.Context, userID string, req *domain.MaterialRequest) (m *domain.Material, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateMaterial")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.create_material", start, err) }(time.Now())

	m, err = buildMaterial(userID, s.newID(), req)
	if err != nil {
		return nil, err
	}
	if m, err = s.store.CreateMaterial(ctx, m); err != nil {
		return nil, err
	}
	s.mutated("material", "create", userID, m.ID)
	return m, nil
}

func (s *CatalogService) UpdateMaterial(ctx context.Context, userID, id string, req *domain.MaterialRequest) (m *domain.Material, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateMaterial")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.update_material", start, err) }(time.Now())

	m, err = buildMaterial(userID, id, req)
	if err != nil {
		return nil, err
	}
	if m, err = s.store.UpdateMaterial(ctx, m); err != nil {
		return nil, err
	}
	s.mutated("material", "update", userID, id)
	return m, nil
}

// DeleteMaterial removes the material and every bill-of-materials line that
// uses it.
func (s *CatalogService) DeleteMaterial(ctx context.Context, userID, id string) (err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteMaterial")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.delete_material", start, err) }(time.Now())

	if _, err := s.store.GetMaterial(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteBOMEntriesByMaterial(ctx, userID, id); err != nil {
		return fmt.Errorf("cascade bom entries: %w", err)
	}
	if err := s.store.DeleteMaterial(ctx, userID, id); err != nil {
		return err
	}
	s.mutated("material", "delete", userID, id)
	return nil
}

// ============================================================
// Products
// ============================================================

func (s *CatalogService) ListProducts(ctx context.Context, userID string) (out []domain.Product, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.list_products", start, err) }(time.Now())

	return s.store.ListProducts(ctx, userID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, userID string, req *domain.ProductRequest) (p *domain.Product, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateProduct")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.create_product", start, err) }(time.Now())

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if p, err = s.store.CreateProduct(ctx, &domain.Product{ID: s.newID(), UserID: userID, Name: name}); err != nil {
		return nil, err
	}
	s.mutated("product", "create", userID, p.ID)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, userID, id string, req *domain.ProductRequest) (p *domain.Product, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateProduct")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.update_product", start, err) }(time.Now())

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if p, err = s.store.UpdateProduct(ctx, &domain.Product{ID: id, UserID: userID, Name: name}); err != nil {
		return nil, err
	}
	s.mutated("product", "update", userID, id)
	return p, nil
}

// DeleteProduct removes the product together with its bill of materials and
// resale entries.
func (s *CatalogService) DeleteProduct(ctx context.Context, userID, id string) (err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteProduct")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.delete_product", start, err) }(time.Now())

	if _, err := s.store.GetProduct(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteBOMEntriesByProduct(ctx, userID, id); err != nil {
		return fmt.Errorf("cascade bom entries: %w", err)
	}
	if err := s.store.DeleteResaleEntriesByProduct(ctx, userID, id); err != nil {
		return fmt.Errorf("cascade resale entries: %w", err)
	}
	if err := s.store.DeleteProduct(ctx, userID, id); err != nil {
		return err
	}
	s.mutated("product", "delete", userID, id)
	return nil
}

// ============================================================
// References
// ============================================================

// ensureReference turns a missing product/material into a validation error on
// the request field that pointed at it.
func ensureReference(field string, err error) error {
	var nf *domain.ErrNotFound
	if errors.As(err, &nf) {
		return &domain.ErrValidation{Field: field, Message: fmt.Sprintf("%s %s does not exist", nf.Resource, nf.ID)}
	}
	return err
}

func (s *CatalogService) checkProduct(ctx context.Context, userID, productID string) error {
	if err := requireID("productId", productID); err != nil {
		return err
	}
	_, err := s.store.GetProduct(ctx, userID, productID)
	return ensureReference("productId", err)
}

func (s *CatalogService) checkMaterial(ctx context.Context, userID, materialID string) error {
	if err := requireID("materialId", materialID); err != nil {
		return err
	}
	_, err := s.store.GetMaterial(ctx, userID, materialID)
	return ensureReference("materialId", err)
}

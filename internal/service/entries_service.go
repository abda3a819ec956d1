package service

import (
	"context"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// ============================================================
// Bill of materials (ficha técnica)
// ============================================================

// ListBOMEntries returns the user's bill-of-materials lines, optionally only
// those of one product.
func (s *CatalogService) ListBOMEntries(ctx context.Context, userID, productID string) (out []domain.BOMEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.ListBOMEntries")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.list_bom_entries", start, err) }(time.Now())

	all, err := s.store.ListBOMEntries(ctx, userID)
	if err != nil || productID == "" {
		return all, err
	}

	out = make([]domain.BOMEntry, 0, len(all))
	for _, e := range all {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *CatalogService) buildBOMEntry(ctx context.Context, userID, id string, req *domain.BOMEntryRequest) (*domain.BOMEntry, error) {
	if err := nonNegative("quantityUsed", req.QuantityUsed); err != nil {
		return nil, err
	}
	if err := s.checkProduct(ctx, userID, req.ProductID); err != nil {
		return nil, err
	}
	if err := s.checkMaterial(ctx, userID, req.MaterialID); err != nil {
		return nil, err
	}
	return &domain.BOMEntry{
		ID:           id,
		UserID:       userID,
		ProductID:    req.ProductID,
		MaterialID:   req.MaterialID,
		QuantityUsed: req.QuantityUsed,
	}, nil
}

func (s *CatalogService) CreateBOMEntry(ctx context.Context, userID string, req *domain.BOMEntryRequest) (e *domain.BOMEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateBOMEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.create_bom_entry", start, err) }(time.Now())

	e, err = s.buildBOMEntry(ctx, userID, s.newID(), req)
	if err != nil {
		return nil, err
	}
	if e, err = s.store.CreateBOMEntry(ctx, e); err != nil {
		return nil, err
	}
	s.mutated("bom_entry", "create", userID, e.ID)
	return e, nil
}

func (s *CatalogService) UpdateBOMEntry(ctx context.Context, userID, id string, req *domain.BOMEntryRequest) (e *domain.BOMEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateBOMEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.update_bom_entry", start, err) }(time.Now())

	e, err = s.buildBOMEntry(ctx, userID, id, req)
	if err != nil {
		return nil, err
	}
	if e, err = s.store.UpdateBOMEntry(ctx, e); err != nil {
		return nil, err
	}
	s.mutated("bom_entry", "update", userID, id)
	return e, nil
}

func (s *CatalogService) DeleteBOMEntry(ctx context.Context, userID, id string) (err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteBOMEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.delete_bom_entry", start, err) }(time.Now())

	if err := s.store.DeleteBOMEntry(ctx, userID, id); err != nil {
		return err
	}
	s.mutated("bom_entry", "delete", userID, id)
	return nil
}

// ============================================================
// Resale entries (precificação revenda)
// ============================================================

func (s *CatalogService) ListResaleEntries(ctx context.Context, userID string) (out []domain.ResaleEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.ListResaleEntries")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.list_resale_entries", start, err) }(time.Now())

	return s.store.ListResaleEntries(ctx, userID)
}

func (s *CatalogService) buildResaleEntry(ctx context.Context, userID, id string, req *domain.ResaleEntryRequest) (*domain.ResaleEntry, error) {
	if err := nonNegative("purchaseValue", req.PurchaseValue); err != nil {
		return nil, err
	}
	if err := s.checkProduct(ctx, userID, req.ProductID); err != nil {
		return nil, err
	}
	return &domain.ResaleEntry{
		ID:            id,
		UserID:        userID,
		ProductID:     req.ProductID,
		PurchaseValue: req.PurchaseValue,
	}, nil
}

func (s *CatalogService) CreateResaleEntry(ctx context.Context, userID string, req *domain.ResaleEntryRequest) (e *domain.ResaleEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateResaleEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.create_resale_entry", start, err) }(time.Now())

	e, err = s.buildResaleEntry(ctx, userID, s.newID(), req)
	if err != nil {
		return nil, err
	}
	if e, err = s.store.CreateResaleEntry(ctx, e); err != nil {
		return nil, err
	}
	s.mutated("resale_entry", "create", userID, e.ID)
	return e, nil
}

func (s *CatalogService) UpdateResaleEntry(ctx context.Context, userID, id string, req *domain.ResaleEntryRequest) (e *domain.ResaleEntry, err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateResaleEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.update_resale_entry", start, err) }(time.Now())

	e, err = s.buildResaleEntry(ctx, userID, id, req)
	if err != nil {
		return nil, err
	}
	if e, err = s.store.UpdateResaleEntry(ctx, e); err != nil {
		return nil, err
	}
	s.mutated("resale_entry", "update", userID, id)
	return e, nil
}

func (s *CatalogService) DeleteResaleEntry(ctx context.Context, userID, id string) (err error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteResaleEntry")
	defer span.End()
	defer func(start time.Time) { finish(s.metrics, span, "catalog.delete_resale_entry", start, err) }(time.Now())

	if err := s.store.DeleteResaleEntry(ctx, userID, id); err != nil {
		return err
	}
	s.mutated("resale_entry", "delete", userID, id)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/port"
	"github.com/boddenberg/precifica-bfa-go/internal/pricing"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/pricing")

// PricingService loads a user's records and evaluates them with the pricing
// engine. Each call works on a fresh snapshot, so results always reflect the
// latest saved data.
type PricingService struct {
	store   port.CatalogStore
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewPricingService creates the pricing service with all dependencies injected.
func NewPricingService(store port.CatalogStore, metrics *observability.Metrics, logger *zap.Logger) *PricingService {
	return &PricingService{store: store, metrics: metrics, logger: logger, now: time.Now}
}

// LoadSnapshot reads the six record collections concurrently. Any failure
// fails the whole load.
func (s *PricingService) LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "PricingService.LoadSnapshot")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	snap := &domain.Snapshot{UserID: userID}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cfg, err := s.store.GetConfiguration(gCtx, userID)
		if err != nil {
			return s.loadFailed("configuration", userID, err)
		}
		snap.Configuration = cfg
		return nil
	})
	g.Go(func() error {
		v, err := s.store.ListFixedCosts(gCtx, userID)
		if err != nil {
			return s.loadFailed("fixed_costs", userID, err)
		}
		snap.FixedCosts = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.ListMaterials(gCtx, userID)
		if err != nil {
			return s.loadFailed("materials", userID, err)
		}
		snap.Materials = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.ListProducts(gCtx, userID)
		if err != nil {
			return s.loadFailed("products", userID, err)
		}
		snap.Products = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.ListBOMEntries(gCtx, userID)
		if err != nil {
			return s.loadFailed("bom_entries", userID, err)
		}
		snap.BOMEntries = v
		return nil
	})
	g.Go(func() error {
		v, err := s.store.ListResaleEntries(gCtx, userID)
		if err != nil {
			return s.loadFailed("resale_entries", userID, err)
		}
		snap.ResaleEntries = v
		return nil
	})

	err := g.Wait()
	finish(s.metrics, span, "pricing.load_snapshot", start, err)
	if err != nil {
		return nil, err
	}

	snap.LoadedAt = s.now().UTC()
	s.logger.Debug("snapshot loaded",
		zap.String("user_id", userID),
		zap.Int("products", len(snap.Products)),
		zap.Int("materials", len(snap.Materials)),
		zap.Duration("latency", time.Since(start)),
	)
	return snap, nil
}

func (s *PricingService) loadFailed(collection, userID string, err error) error {
	log := s.logger.Error
	if errors.Is(err, context.Canceled) {
		log = s.logger.Debug
	}
	log("failed to load collection",
		zap.String("collection", collection),
		zap.String("user_id", userID),
		zap.Error(err),
	)
	return fmt.Errorf("load %s: %w", collection, err)
}

// Report evaluates the user's current records into the full pricing report.
func (s *PricingService) Report(ctx context.Context, userID string) (*domain.PricingReport, error) {
	ctx, span := tracer.Start(ctx, "PricingService.Report")
	defer span.End()

	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := pricing.BuildReport(*snap)

	s.metrics.IncrReport("report")
	if report.Summary.Feasible {
		s.metrics.RecordPriced("fabrication", len(report.Fabrication), 0)
		s.metrics.RecordPriced("resale", len(report.Resale), 0)
	} else {
		s.metrics.RecordPriced("fabrication", len(report.Fabrication), len(report.Fabrication))
		s.metrics.RecordPriced("resale", len(report.Resale), len(report.Resale))
	}
	span.SetAttributes(
		attribute.Int("report.fabrication", len(report.Fabrication)),
		attribute.Int("report.resale", len(report.Resale)),
		attribute.Bool("report.feasible", report.Summary.Feasible),
	)

	if !report.Summary.Feasible {
		s.logger.Warn("rates add up to 100% or more; every price is zero",
			zap.String("user_id", userID),
			zap.Int("unpriced_items", pricing.Infeasible(report)),
		)
	}
	return &report, nil
}

// Dashboard evaluates only the summary block.
func (s *PricingService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "PricingService.Dashboard")
	defer span.End()

	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := pricing.BuildDashboard(*snap)
	s.metrics.IncrReport("dashboard")
	return &dash, nil
}

// Simulate prices a base cost under ad-hoc rates. It never reads the store.
func (s *PricingService) Simulate(ctx context.Context, req *domain.SimulationRequest) (*domain.SimulationResponse, error) {
	_, span := tracer.Start(ctx, "PricingService.Simulate")
	defer span.End()

	if err := nonNegative("baseCost", req.BaseCost); err != nil {
		return nil, err
	}
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"taxRate", req.TaxRate},
		{"fixedCostRate", req.FixedCostRate},
		{"otherFeesRate", req.OtherFeesRate},
		{"profitMargin", req.ProfitMargin},
	}
	for _, r := range rates {
		if err := percent(r.field, r.value); err != nil {
			return nil, err
		}
	}

	res := pricing.Simulate(*req)
	infeasible := 0
	if !res.Feasible {
		infeasible = 1
	}
	s.metrics.IncrReport("simulation")
	s.metrics.RecordPriced("simulation", 1, infeasible)
	return &res, nil
}

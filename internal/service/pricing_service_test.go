package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"go.uber.org/zap"
)

func bakeryStore() *mockStore {
	store := newMockStore()
	store.config["u1"] = domain.Configuration{
		ID:             "cfg-1",
		UserID:         "u1",
		MonthlyRevenue: d("10000"),
		TaxRate:        d("6"),
		OtherFeesRate:  d("2"),
		ProfitMargin:   d("15"),
	}
	store.fixed = []domain.FixedCost{{ID: "fc-1", UserID: "u1", Description: "Aluguel", Value: d("1500")}}
	store.materials = []domain.Material{{ID: "m1", UserID: "u1", Name: "Farinha", Quantity: d("10"), TotalValue: d("50")}}
	store.products = []domain.Product{{ID: "p1", UserID: "u1", Name: "Bolo"}}
	store.bom = []domain.BOMEntry{{ID: "b1", UserID: "u1", ProductID: "p1", MaterialID: "m1", QuantityUsed: d("10")}}
	store.resale = []domain.ResaleEntry{{ID: "r1", UserID: "u1", ProductID: "p1", PurchaseValue: d("20")}}
	return store
}

func newPricing(store *mockStore) (*service.PricingService, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return service.NewPricingService(store, metrics, zap.NewNop()), metrics
}

func TestLoadSnapshot_ReadsEveryCollection(t *testing.T) {
	store := bakeryStore()
	svc, _ := newPricing(store)

	snap, err := svc.LoadSnapshot(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Configuration == nil || len(snap.FixedCosts) != 1 || len(snap.Materials) != 1 ||
		len(snap.Products) != 1 || len(snap.BOMEntries) != 1 || len(snap.ResaleEntries) != 1 {
		t.Errorf("expected every collection loaded, got %+v", snap)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("expected LoadedAt to be set")
	}
}

func TestLoadSnapshot_AnyFailureFailsTheLoad(t *testing.T) {
	for _, method := range []string{"GetConfiguration", "ListFixedCosts", "ListMaterials", "ListProducts", "ListBOMEntries", "ListResaleEntries"} {
		t.Run(method, func(t *testing.T) {
			store := bakeryStore()
			store.failOn = method
			store.err = &domain.ErrTimeout{Operation: method}
			svc, _ := newPricing(store)

			_, err := svc.LoadSnapshot(context.Background(), "u1")
			var timeout *domain.ErrTimeout
			if !errors.As(err, &timeout) {
				t.Fatalf("expected ErrTimeout, got %v", err)
			}
		})
	}
}

func TestLoadSnapshot_CancelledContext(t *testing.T) {
	svc, _ := newPricing(bakeryStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.LoadSnapshot(ctx, "u1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReport_ClientCancellationIsNotAStoreError(t *testing.T) {
	store := bakeryStore()
	store.failOn = "ListMaterials"
	store.err = context.Canceled
	svc, metrics := newPricing(store)

	_, err := svc.Report(context.Background(), "u1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := metrics.GetPricingSnapshot().StoreErrors; got != 0 {
		t.Errorf("expected 0 store errors, got %d", got)
	}
}

func TestReport_PricesFromLatestData(t *testing.T) {
	store := bakeryStore()
	svc, metrics := newPricing(store)
	ctx := context.Background()

	report, err := svc.Report(ctx, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := report.Fabrication[0].SalePrice.Round(2); !got.Equal(d("80.65")) {
		t.Errorf("expected 80.65, got %s", got)
	}
	if got := report.Resale[0].SalePrice.Round(2); !got.Equal(d("32.26")) {
		t.Errorf("expected 32.26, got %s", got)
	}

	// A later edit must show up in the next report.
	store.materials[0].TotalValue = d("100")
	report, err = svc.Report(ctx, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := report.Fabrication[0].SalePrice.Round(2); !got.Equal(d("161.29")) {
		t.Errorf("expected 161.29 after edit, got %s", got)
	}

	snap := metrics.GetPricingSnapshot()
	if snap.ReportsBuilt != 2 || snap.ProductsPriced != 4 || snap.InfeasibleQuotes != 0 {
		t.Errorf("unexpected metrics %+v", snap)
	}
}

func TestReport_InfeasibleCountsEveryRow(t *testing.T) {
	store := bakeryStore()
	cfg := store.config["u1"]
	cfg.TaxRate = d("50")
	cfg.OtherFeesRate = d("10")
	cfg.ProfitMargin = d("45")
	store.config["u1"] = cfg
	svc, metrics := newPricing(store)

	report, err := svc.Report(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Summary.Feasible {
		t.Fatal("expected infeasible report")
	}
	if got := metrics.GetPricingSnapshot().InfeasibleQuotes; got != 2 {
		t.Errorf("expected 2 infeasible quotes, got %d", got)
	}
}

func TestDashboard(t *testing.T) {
	svc, _ := newPricing(bakeryStore())

	dash, err := svc.Dashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !dash.Summary.FixedCostRatio.Equal(d("0.15")) {
		t.Errorf("expected ratio 0.15, got %s", dash.Summary.FixedCostRatio)
	}
	if !dash.TotalMaterialsValue.Equal(d("50")) {
		t.Errorf("expected 50, got %s", dash.TotalMaterialsValue)
	}
}

func TestSimulate_DoesNotTouchStore(t *testing.T) {
	store := bakeryStore()
	svc, _ := newPricing(store)

	res, err := svc.Simulate(context.Background(), &domain.SimulationRequest{
		BaseCost:      d("50"),
		TaxRate:       d("6"),
		FixedCostRate: d("15"),
		OtherFeesRate: d("2"),
		ProfitMargin:  d("15"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Feasible || !res.SalePrice.Round(2).Equal(d("80.65")) {
		t.Errorf("unexpected simulation %+v", res)
	}
	if len(store.calls) != 0 {
		t.Errorf("expected no store calls, got %v", store.calls)
	}
}

func TestSimulate_Validation(t *testing.T) {
	svc, _ := newPricing(newMockStore())
	ctx := context.Background()

	_, err := svc.Simulate(ctx, &domain.SimulationRequest{BaseCost: d("-1")})
	expectValidation(t, err, "baseCost")

	_, err = svc.Simulate(ctx, &domain.SimulationRequest{BaseCost: d("1"), FixedCostRate: d("101")})
	expectValidation(t, err, "fixedCostRate")
}

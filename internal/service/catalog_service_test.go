package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/observability"
	"github.com/boddenberg/precifica-bfa-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCatalog(store *mockStore) (*service.CatalogService, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return service.NewCatalogService(store, metrics, zap.NewNop()), metrics
}

func expectValidation(t *testing.T, err error, field string) {
	t.Helper()
	var v *domain.ErrValidation
	if !errors.As(err, &v) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if v.Field != field {
		t.Errorf("expected field %s, got %s", field, v.Field)
	}
}

func TestGetConfiguration_DefaultsWhenAbsent(t *testing.T) {
	svc, _ := newCatalog(newMockStore())

	cfg, err := svc.GetConfiguration(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ID != "" || cfg.UserID != "u1" || !cfg.TaxRate.IsZero() {
		t.Errorf("expected empty configuration for u1, got %+v", cfg)
	}
}

func TestSaveConfiguration_InsertThenUpdate(t *testing.T) {
	store := newMockStore()
	svc, metrics := newCatalog(store)
	ctx := context.Background()

	first, err := svc.SaveConfiguration(ctx, "u1", &domain.ConfigurationRequest{
		MonthlyRevenue: d("10000"),
		TaxRate:        d("6"),
		OtherFeesRate:  d("2"),
		ProfitMargin:   d("15"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected an id on first save")
	}
	if !store.called("InsertConfiguration") {
		t.Error("expected first save to insert")
	}

	second, err := svc.SaveConfiguration(ctx, "u1", &domain.ConfigurationRequest{
		MonthlyRevenue: d("12000"),
		TaxRate:        d("6"),
		ProfitMargin:   d("20"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected update to keep id %s, got %s", first.ID, second.ID)
	}
	if !store.called("UpdateConfiguration") {
		t.Error("expected second save to update")
	}
	if got := metrics.GetPricingSnapshot().Mutations; got != 2 {
		t.Errorf("expected 2 mutations, got %d", got)
	}
}

func TestSaveConfiguration_RejectsRatesOutOfRange(t *testing.T) {
	svc, _ := newCatalog(newMockStore())
	ctx := context.Background()

	cases := []struct {
		field string
		req   domain.ConfigurationRequest
	}{
		{"monthlyRevenue", domain.ConfigurationRequest{MonthlyRevenue: d("-1")}},
		{"taxRate", domain.ConfigurationRequest{TaxRate: d("100.01")}},
		{"otherFeesRate", domain.ConfigurationRequest{OtherFeesRate: d("-0.5")}},
		{"profitMargin", domain.ConfigurationRequest{ProfitMargin: d("150")}},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			req := tc.req
			_, err := svc.SaveConfiguration(ctx, "u1", &req)
			expectValidation(t, err, tc.field)
		})
	}
}

func TestSaveConfiguration_AcceptsBoundaries(t *testing.T) {
	svc, _ := newCatalog(newMockStore())

	_, err := svc.SaveConfiguration(context.Background(), "u1", &domain.ConfigurationRequest{
		TaxRate:      d("100"),
		ProfitMargin: d("0"),
	})
	if err != nil {
		t.Fatalf("expected 0 and 100 to be accepted, got %v", err)
	}
}

func TestCreateFixedCost_Validation(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalog(store)
	ctx := context.Background()

	_, err := svc.CreateFixedCost(ctx, "u1", &domain.FixedCostRequest{Description: "   ", Value: d("10")})
	expectValidation(t, err, "description")

	_, err = svc.CreateFixedCost(ctx, "u1", &domain.FixedCostRequest{Description: "Aluguel", Value: d("-10")})
	expectValidation(t, err, "value")

	fc, err := svc.CreateFixedCost(ctx, "u1", &domain.FixedCostRequest{Description: "  Aluguel ", Value: d("1200")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fc.Description != "Aluguel" || fc.UserID != "u1" || fc.ID == "" {
		t.Errorf("unexpected fixed cost %+v", fc)
	}
	if !store.called("CreateFixedCost") {
		t.Error("expected store to be called")
	}
}

func TestUpdateFixedCost_UnknownID(t *testing.T) {
	svc, _ := newCatalog(newMockStore())

	_, err := svc.UpdateFixedCost(context.Background(), "u1", "nope", &domain.FixedCostRequest{Description: "x"})
	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBOMEntry_RequiresExistingReferences(t *testing.T) {
	store := newMockStore()
	store.products = []domain.Product{{ID: "p1", UserID: "u1", Name: "Bolo"}}
	store.materials = []domain.Material{{ID: "m1", UserID: "u1", Name: "Farinha"}}
	svc, _ := newCatalog(store)
	ctx := context.Background()

	_, err := svc.CreateBOMEntry(ctx, "u1", &domain.BOMEntryRequest{MaterialID: "m1", QuantityUsed: d("1")})
	expectValidation(t, err, "productId")

	_, err = svc.CreateBOMEntry(ctx, "u1", &domain.BOMEntryRequest{ProductID: "p1", MaterialID: "m9", QuantityUsed: d("1")})
	expectValidation(t, err, "materialId")

	_, err = svc.CreateBOMEntry(ctx, "u2", &domain.BOMEntryRequest{ProductID: "p1", MaterialID: "m1", QuantityUsed: d("1")})
	expectValidation(t, err, "productId")

	_, err = svc.CreateBOMEntry(ctx, "u1", &domain.BOMEntryRequest{ProductID: "p1", MaterialID: "m1", QuantityUsed: d("-2")})
	expectValidation(t, err, "quantityUsed")

	e, err := svc.CreateBOMEntry(ctx, "u1", &domain.BOMEntryRequest{ProductID: "p1", MaterialID: "m1", QuantityUsed: d("0.5")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if e.ProductID != "p1" || e.MaterialID != "m1" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestCreateResaleEntry_RequiresProduct(t *testing.T) {
	store := newMockStore()
	store.products = []domain.Product{{ID: "p1", UserID: "u1", Name: "Refrigerante"}}
	svc, _ := newCatalog(store)
	ctx := context.Background()

	_, err := svc.CreateResaleEntry(ctx, "u1", &domain.ResaleEntryRequest{ProductID: "p2", PurchaseValue: d("3")})
	expectValidation(t, err, "productId")

	_, err = svc.CreateResaleEntry(ctx, "u1", &domain.ResaleEntryRequest{ProductID: "p1", PurchaseValue: d("-3")})
	expectValidation(t, err, "purchaseValue")

	if _, err := svc.CreateResaleEntry(ctx, "u1", &domain.ResaleEntryRequest{ProductID: "p1", PurchaseValue: d("3")}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestListBOMEntries_FiltersByProduct(t *testing.T) {
	store := newMockStore()
	store.bom = []domain.BOMEntry{
		{ID: "b1", UserID: "u1", ProductID: "p1"},
		{ID: "b2", UserID: "u1", ProductID: "p2"},
		{ID: "b3", UserID: "u2", ProductID: "p1"},
	}
	svc, _ := newCatalog(store)

	all, err := svc.ListBOMEntries(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 entries, got %d", len(all))
	}

	only, _ := svc.ListBOMEntries(context.Background(), "u1", "p1")
	if len(only) != 1 || only[0].ID != "b1" {
		t.Errorf("expected only b1, got %+v", only)
	}
}

func TestDeleteProduct_CascadesEntries(t *testing.T) {
	store := newMockStore()
	store.products = []domain.Product{{ID: "p1", UserID: "u1"}, {ID: "p2", UserID: "u1"}}
	store.bom = []domain.BOMEntry{
		{ID: "b1", UserID: "u1", ProductID: "p1", MaterialID: "m1"},
		{ID: "b2", UserID: "u1", ProductID: "p2", MaterialID: "m1"},
	}
	store.resale = []domain.ResaleEntry{
		{ID: "r1", UserID: "u1", ProductID: "p1"},
		{ID: "r2", UserID: "u1", ProductID: "p2"},
	}
	svc, _ := newCatalog(store)

	if err := svc.DeleteProduct(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.products) != 1 || len(store.bom) != 1 || len(store.resale) != 1 {
		t.Fatalf("expected p1 and its entries removed, got %d products, %d bom, %d resale",
			len(store.products), len(store.bom), len(store.resale))
	}
	if store.bom[0].ProductID != "p2" || store.resale[0].ProductID != "p2" {
		t.Error("expected p2 entries to survive")
	}
}

func TestDeleteProduct_UnknownDoesNotCascade(t *testing.T) {
	store := newMockStore()
	store.bom = []domain.BOMEntry{{ID: "b1", UserID: "u1", ProductID: "ghost"}}
	svc, _ := newCatalog(store)

	err := svc.DeleteProduct(context.Background(), "u1", "ghost")
	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.called("DeleteBOMEntriesByProduct") {
		t.Error("expected no cascade for an unknown product")
	}
}

func TestDeleteMaterial_CascadesBOMEntries(t *testing.T) {
	store := newMockStore()
	store.materials = []domain.Material{{ID: "m1", UserID: "u1"}, {ID: "m2", UserID: "u1"}}
	store.bom = []domain.BOMEntry{
		{ID: "b1", UserID: "u1", ProductID: "p1", MaterialID: "m1"},
		{ID: "b2", UserID: "u1", ProductID: "p1", MaterialID: "m2"},
	}
	svc, _ := newCatalog(store)

	if err := svc.DeleteMaterial(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.bom) != 1 || store.bom[0].MaterialID != "m2" {
		t.Errorf("expected only the m2 line to remain, got %+v", store.bom)
	}
}

func TestDeleteMaterial_CascadeFailureKeepsMaterial(t *testing.T) {
	store := newMockStore()
	store.materials = []domain.Material{{ID: "m1", UserID: "u1"}}
	store.failOn = "DeleteBOMEntriesByMaterial"
	store.err = &domain.ErrExternalService{Service: "sqlite", Err: errors.New("disk I/O error")}
	svc, metrics := newCatalog(store)

	err := svc.DeleteMaterial(context.Background(), "u1", "m1")
	var ext *domain.ErrExternalService
	if !errors.As(err, &ext) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if len(store.materials) != 1 {
		t.Error("expected material to survive a failed cascade")
	}
	if got := metrics.GetPricingSnapshot().StoreErrors; got != 1 {
		t.Errorf("expected 1 store error, got %d", got)
	}
}

func TestCreateMaterial_Validation(t *testing.T) {
	svc, _ := newCatalog(newMockStore())
	ctx := context.Background()

	_, err := svc.CreateMaterial(ctx, "u1", &domain.MaterialRequest{Unit: "kg"})
	expectValidation(t, err, "name")

	_, err = svc.CreateMaterial(ctx, "u1", &domain.MaterialRequest{Name: "Farinha", Quantity: d("-1")})
	expectValidation(t, err, "quantity")

	_, err = svc.CreateMaterial(ctx, "u1", &domain.MaterialRequest{Name: "Farinha", TotalValue: d("-1")})
	expectValidation(t, err, "totalValue")

	m, err := svc.CreateMaterial(ctx, "u1", &domain.MaterialRequest{Name: "Farinha", Unit: "kg", Quantity: d("0"), TotalValue: d("20")})
	if err != nil {
		t.Fatalf("expected zero quantity to be accepted, got %v", err)
	}
	if m.Name != "Farinha" {
		t.Errorf("unexpected material %+v", m)
	}
}

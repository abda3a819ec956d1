package service_test

import (
	"context"
	"sync"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
)

// --- Mocks ---

// mockStore is an in-memory port.CatalogStore. failOn makes the named
// method return err; calls records every method invoked, in order.
type mockStore struct {
	mu sync.Mutex

	config    map[string]domain.Configuration
	fixed     []domain.FixedCost
	materials []domain.Material
	products  []domain.Product
	bom       []domain.BOMEntry
	resale    []domain.ResaleEntry

	failOn string
	err    error
	calls  []string
}

func newMockStore() *mockStore {
	return &mockStore{config: map[string]domain.Configuration{}}
}

func (m *mockStore) enter(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
	if m.failOn == method {
		return m.err
	}
	return nil
}

func (m *mockStore) called(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == method {
			return true
		}
	}
	return false
}

func notFound(resource, id string) error {
	return &domain.ErrNotFound{Resource: resource, ID: id}
}

func (m *mockStore) GetConfiguration(_ context.Context, userID string) (*domain.Configuration, error) {
	if err := m.enter("GetConfiguration"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.config[userID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (m *mockStore) InsertConfiguration(_ context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	if err := m.enter("InsertConfiguration"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config[cfg.UserID] = *cfg
	out := *cfg
	return &out, nil
}

func (m *mockStore) UpdateConfiguration(_ context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	if err := m.enter("UpdateConfiguration"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.config[cfg.UserID]; !ok || cur.ID != cfg.ID {
		return nil, notFound("configuration", cfg.ID)
	}
	m.config[cfg.UserID] = *cfg
	out := *cfg
	return &out, nil
}

func (m *mockStore) ListFixedCosts(_ context.Context, userID string) ([]domain.FixedCost, error) {
	if err := m.enter("ListFixedCosts"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByUser(m.fixed, userID, func(v domain.FixedCost) string { return v.UserID }), nil
}

func (m *mockStore) CreateFixedCost(_ context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	if err := m.enter("CreateFixedCost"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixed = append(m.fixed, *fc)
	out := *fc
	return &out, nil
}

func (m *mockStore) UpdateFixedCost(_ context.Context, fc *domain.FixedCost) (*domain.FixedCost, error) {
	if err := m.enter("UpdateFixedCost"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.fixed {
		if m.fixed[i].ID == fc.ID && m.fixed[i].UserID == fc.UserID {
			m.fixed[i] = *fc
			out := *fc
			return &out, nil
		}
	}
	return nil, notFound("fixed_cost", fc.ID)
}

func (m *mockStore) DeleteFixedCost(_ context.Context, userID, id string) error {
	if err := m.enter("DeleteFixedCost"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.fixed, ok = removeOne(m.fixed, func(v domain.FixedCost) bool { return v.ID == id && v.UserID == userID })
	if !ok {
		return notFound("fixed_cost", id)
	}
	return nil
}

func (m *mockStore) ListMaterials(_ context.Context, userID string) ([]domain.Material, error) {
	if err := m.enter("ListMaterials"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByUser(m.materials, userID, func(v domain.Material) string { return v.UserID }), nil
}

func (m *mockStore) GetMaterial(_ context.Context, userID, id string) (*domain.Material, error) {
	if err := m.enter("GetMaterial"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.materials {
		if v.ID == id && v.UserID == userID {
			out := v
			return &out, nil
		}
	}
	return nil, notFound("material", id)
}

func (m *mockStore) CreateMaterial(_ context.Context, mat *domain.Material) (*domain.Material, error) {
	if err := m.enter("CreateMaterial"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials = append(m.materials, *mat)
	out := *mat
	return &out, nil
}

func (m *mockStore) UpdateMaterial(_ context.Context, mat *domain.Material) (*domain.Material, error) {
	if err := m.enter("UpdateMaterial"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.materials {
		if m.materials[i].ID == mat.ID && m.materials[i].UserID == mat.UserID {
			m.materials[i] = *mat
			out := *mat
			return &out, nil
		}
	}
	return nil, notFound("material", mat.ID)
}

func (m *mockStore) DeleteMaterial(_ context.Context, userID, id string) error {
	if err := m.enter("DeleteMaterial"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.materials, ok = removeOne(m.materials, func(v domain.Material) bool { return v.ID == id && v.UserID == userID })
	if !ok {
		return notFound("material", id)
	}
	return nil
}

func (m *mockStore) ListProducts(_ context.Context, userID string) ([]domain.Product, error) {
	if err := m.enter("ListProducts"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByUser(m.products, userID, func(v domain.Product) string { return v.UserID }), nil
}

func (m *mockStore) GetProduct(_ context.Context, userID, id string) (*domain.Product, error) {
	if err := m.enter("GetProduct"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.products {
		if v.ID == id && v.UserID == userID {
			out := v
			return &out, nil
		}
	}
	return nil, notFound("product", id)
}

func (m *mockStore) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if err := m.enter("CreateProduct"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *p)
	out := *p
	return &out, nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if err := m.enter("UpdateProduct"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID && m.products[i].UserID == p.UserID {
			m.products[i] = *p
			out := *p
			return &out, nil
		}
	}
	return nil, notFound("product", p.ID)
}

func (m *mockStore) DeleteProduct(_ context.Context, userID, id string) error {
	if err := m.enter("DeleteProduct"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.products, ok = removeOne(m.products, func(v domain.Product) bool { return v.ID == id && v.UserID == userID })
	if !ok {
		return notFound("product", id)
	}
	return nil
}

func (m *mockStore) ListBOMEntries(_ context.Context, userID string) ([]domain.BOMEntry, error) {
	if err := m.enter("ListBOMEntries"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByUser(m.bom, userID, func(v domain.BOMEntry) string { return v.UserID }), nil
}

func (m *mockStore) CreateBOMEntry(_ context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	if err := m.enter("CreateBOMEntry"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bom = append(m.bom, *e)
	out := *e
	return &out, nil
}

func (m *mockStore) UpdateBOMEntry(_ context.Context, e *domain.BOMEntry) (*domain.BOMEntry, error) {
	if err := m.enter("UpdateBOMEntry"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bom {
		if m.bom[i].ID == e.ID && m.bom[i].UserID == e.UserID {
			m.bom[i] = *e
			out := *e
			return &out, nil
		}
	}
	return nil, notFound("bom_entry", e.ID)
}

func (m *mockStore) DeleteBOMEntry(_ context.Context, userID, id string) error {
	if err := m.enter("DeleteBOMEntry"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.bom, ok = removeOne(m.bom, func(v domain.BOMEntry) bool { return v.ID == id && v.UserID == userID })
	if !ok {
		return notFound("bom_entry", id)
	}
	return nil
}

func (m *mockStore) DeleteBOMEntriesByProduct(_ context.Context, userID, productID string) error {
	if err := m.enter("DeleteBOMEntriesByProduct"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bom = removeAll(m.bom, func(v domain.BOMEntry) bool { return v.ProductID == productID && v.UserID == userID })
	return nil
}

func (m *mockStore) DeleteBOMEntriesByMaterial(_ context.Context, userID, materialID string) error {
	if err := m.enter("DeleteBOMEntriesByMaterial"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bom = removeAll(m.bom, func(v domain.BOMEntry) bool { return v.MaterialID == materialID && v.UserID == userID })
	return nil
}

func (m *mockStore) ListResaleEntries(_ context.Context, userID string) ([]domain.ResaleEntry, error) {
	if err := m.enter("ListResaleEntries"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByUser(m.resale, userID, func(v domain.ResaleEntry) string { return v.UserID }), nil
}

func (m *mockStore) CreateResaleEntry(_ context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	if err := m.enter("CreateResaleEntry"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resale = append(m.resale, *e)
	out := *e
	return &out, nil
}

func (m *mockStore) UpdateResaleEntry(_ context.Context, e *domain.ResaleEntry) (*domain.ResaleEntry, error) {
	if err := m.enter("UpdateResaleEntry"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.resale {
		if m.resale[i].ID == e.ID && m.resale[i].UserID == e.UserID {
			m.resale[i] = *e
			out := *e
			return &out, nil
		}
	}
	return nil, notFound("resale_entry", e.ID)
}

func (m *mockStore) DeleteResaleEntry(_ context.Context, userID, id string) error {
	if err := m.enter("DeleteResaleEntry"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.resale, ok = removeOne(m.resale, func(v domain.ResaleEntry) bool { return v.ID == id && v.UserID == userID })
	if !ok {
		return notFound("resale_entry", id)
	}
	return nil
}

func (m *mockStore) DeleteResaleEntriesByProduct(_ context.Context, userID, productID string) error {
	if err := m.enter("DeleteResaleEntriesByProduct"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resale = removeAll(m.resale, func(v domain.ResaleEntry) bool { return v.ProductID == productID && v.UserID == userID })
	return nil
}

func filterByUser[T any](in []T, userID string, owner func(T) string) []T {
	out := []T{}
	for _, v := range in {
		if owner(v) == userID {
			out = append(out, v)
		}
	}
	return out
}

func removeOne[T any](in []T, match func(T) bool) ([]T, bool) {
	for i, v := range in {
		if match(v) {
			return append(in[:i:i], in[i+1:]...), true
		}
	}
	return in, false
}

func removeAll[T any](in []T, match func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

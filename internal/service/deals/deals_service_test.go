package deals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
)

type mockStore struct {
	stores           map[string]*domain.Store
	insertedProducts []domain.Product
	insertedDeals    []domain.Deal
	insertErr        error
	getCalls         int
}

func (m *mockStore) GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	m.getCalls++
	st, ok := m.stores[slug]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return st, nil
}

func (m *mockStore) ListStores(ctx context.Context) ([]*domain.Store, error) {
	out := make([]*domain.Store, 0, len(m.stores))
	for _, st := range m.stores {
		out = append(out, st)
	}
	return out, nil
}

func (m *mockStore) ListCategoryIDs(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"Seafood": 1, "Meat & Poultry": 2, "Special Offers": 3}, nil
}

func (m *mockStore) InsertDeals(ctx context.Context, storeIDs map[string]int64, products []domain.Product, deals []domain.Deal) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.insertedProducts = products
	m.insertedDeals = deals
	return len(deals), nil
}

func floatPtr(f float64) *float64 { return &f }

func testConfig() config.IngestConfig {
	return config.IngestConfig{
		BatchSize:  50,
		StoreSlugs: config.DefaultStoreSlugs(),
	}
}

func testDatasets() []dto.StoreDataset {
	scrapedAt := time.Date(2025, 11, 7, 12, 0, 0, 0, time.UTC)
	return []dto.StoreDataset{
		{
			StoreName: "Rema 1000",
			ScrapedAt: scrapedAt,
			Offers: []dto.RawOffer{
				{Heading: "Laks 2 stk", Price: floatPtr(49)},
				{Heading: "Uden pris"},
			},
		},
		{
			StoreName: "Netto",
			ScrapedAt: scrapedAt,
			Offers: []dto.RawOffer{
				{Heading: "Laks 2 stk", Price: floatPtr(45)},
			},
		},
	}
}

func TestService_ImportDatasets(t *testing.T) {
	st := &mockStore{stores: map[string]*domain.Store{
		"rema":  {ID: 1, Name: "Rema 1000", Slug: "rema"},
		"netto": {ID: 2, Name: "Netto", Slug: "netto"},
	}}

	svc := NewService(st, testConfig())

	summary, err := svc.ImportDatasets(context.Background(), testDatasets())
	if err != nil {
		t.Fatalf("ImportDatasets: %v", err)
	}

	if summary.OffersIn != 3 {
		t.Errorf("offers in = %d, want 3", summary.OffersIn)
	}
	if summary.Deals != 2 || summary.Inserted != 2 {
		t.Errorf("deals = %d inserted = %d, want 2/2", summary.Deals, summary.Inserted)
	}
	if summary.Dropped != 1 {
		t.Errorf("dropped = %d, want 1", summary.Dropped)
	}
	// Same product from two stores collapses to one.
	if summary.Products != 1 {
		t.Errorf("products = %d, want 1", summary.Products)
	}
	if summary.RunID == "" {
		t.Error("missing run id")
	}

	if len(st.insertedProducts) != 1 || len(st.insertedDeals) != 2 {
		t.Errorf("store got %d products / %d deals, want 1/2",
			len(st.insertedProducts), len(st.insertedDeals))
	}
	if st.getCalls != 2 {
		t.Errorf("store resolved %d times, want once per distinct store", st.getCalls)
	}
}

func TestService_ImportDatasets_UnknownStore(t *testing.T) {
	st := &mockStore{stores: map[string]*domain.Store{}}
	svc := NewService(st, testConfig())

	datasets := []dto.StoreDataset{{
		StoreName: "Bilka",
		Offers:    []dto.RawOffer{{Heading: "Laks", Price: floatPtr(49)}},
	}}

	_, err := svc.ImportDatasets(context.Background(), datasets)
	if err == nil {
		t.Fatal("expected error for unknown store")
	}

	var unknownStore *constants.UnknownStoreError
	if !errors.As(err, &unknownStore) {
		t.Fatalf("error type = %T, want UnknownStoreError", err)
	}
	if unknownStore.StoreName != "Bilka" {
		t.Errorf("error names %q, want Bilka", unknownStore.StoreName)
	}
	if len(st.insertedDeals) != 0 {
		t.Error("no deals may be inserted when a store is unmapped")
	}
}

func TestService_GenerateSQL(t *testing.T) {
	svc := NewService(&mockStore{}, testConfig())

	batches, err := svc.GenerateSQL(context.Background(), testDatasets())
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
}

func TestService_Normalize_DeterministicProductOrder(t *testing.T) {
	svc := NewService(&mockStore{}, testConfig())

	first, firstProducts := svc.Normalize(testDatasets())
	second, secondProducts := svc.Normalize(testDatasets())

	if len(first) != len(second) || len(firstProducts) != len(secondProducts) {
		t.Fatal("normalization is not deterministic")
	}
	for i := range firstProducts {
		if firstProducts[i] != secondProducts[i] {
			t.Errorf("product order differs at %d: %+v vs %+v", i, firstProducts[i], secondProducts[i])
		}
	}
}

package dedup

import (
	"testing"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
)

func deal(store, name, category string) domain.Deal {
	return domain.Deal{
		StoreName:      store,
		OriginalName:   name,
		NormalizedName: name,
		Category:       category,
	}
}

func TestProducts_CollapsesAcrossStores(t *testing.T) {
	deals := []domain.Deal{
		deal("Rema 1000", "Laks", "Seafood"),
		deal("Netto", "Laks", "Seafood"),
		deal("Meny", "Laks", "Seafood"),
	}

	products := Products(deals)
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].Name != "Laks" || products[0].Category != "Seafood" {
		t.Errorf("unexpected product %+v", products[0])
	}
}

func TestProducts_DistinctKeysStayDistinct(t *testing.T) {
	deals := []domain.Deal{
		deal("Rema 1000", "Laks", "Seafood"),
		deal("Rema 1000", "Laks", "Frozen Foods"),
		deal("Netto", "Hakket kød", "Meat & Poultry"),
		deal("Netto", "Laks", "Seafood"),
	}

	products := Products(deals)
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}
}

func TestProducts_FirstSeenOrder(t *testing.T) {
	deals := []domain.Deal{
		deal("Rema 1000", "C", "Special Offers"),
		deal("Rema 1000", "A", "Special Offers"),
		deal("Netto", "C", "Special Offers"),
		deal("Netto", "B", "Special Offers"),
	}

	products := Products(deals)
	want := []string{"C", "A", "B"}
	if len(products) != len(want) {
		t.Fatalf("got %d products, want %d", len(products), len(want))
	}
	for i, name := range want {
		if products[i].Name != name {
			t.Errorf("products[%d] = %q, want %q", i, products[i].Name, name)
		}
	}
}

func TestProducts_Empty(t *testing.T) {
	if products := Products(nil); len(products) != 0 {
		t.Fatalf("got %d products, want 0", len(products))
	}
}

package sqlgen

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
)

var testSlugs = map[string]string{
	"Rema 1000": "rema",
	"Netto":     "netto",
}

func testDeal(store, name string) domain.Deal {
	perUnit := decimal.RequireFromString("87.5")
	from := time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC)
	return domain.Deal{
		StoreName:      store,
		Category:       "Meat & Poultry",
		OriginalName:   name,
		NormalizedName: name,
		Price:          decimal.RequireFromString("35"),
		Quantity:       "400 g",
		UnitType:       "g",
		PricePerUnit:   &perUnit,
		ValidFrom:      &from,
		ValidTo:        &to,
		ScrapedAt:      time.Date(2025, 11, 7, 12, 0, 0, 0, time.UTC),
	}
}

// Every deal lands in exactly one batch.
func TestGenerator_BatchingRoundTrip(t *testing.T) {
	deals := make([]domain.Deal, 0, 120)
	for i := 0; i < 120; i++ {
		deals = append(deals, testDeal("Rema 1000", fmt.Sprintf("Produkt %d", i)))
	}

	g := NewGenerator(testSlugs, 50)
	batches, err := g.Generate(deals)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}

	total := 0
	for _, batch := range batches {
		total += strings.Count(batch, "(SELECT id FROM stores_map WHERE slug =")
	}
	if total != len(deals) {
		t.Errorf("batches carry %d deal tuples, want %d", total, len(deals))
	}
}

func TestGenerator_EscapesSingleQuotes(t *testing.T) {
	g := NewGenerator(testSlugs, 50)

	batches, err := g.Generate([]domain.Deal{testDeal("Rema 1000", "O'Boy's Kakao")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}

	if !strings.Contains(batches[0], "'O''Boy''s Kakao'") {
		t.Errorf("batch does not escape quotes:\n%s", batches[0])
	}
	if strings.Contains(batches[0], "'O'Boy's Kakao'") {
		t.Errorf("batch contains unescaped literal:\n%s", batches[0])
	}
}

func TestGenerator_NullAndBooleanEncoding(t *testing.T) {
	d := testDeal("Rema 1000", "Agurk")
	d.PricePerUnit = nil
	d.ValidFrom = nil
	d.ValidTo = nil
	d.IsAppPrice = true

	g := NewGenerator(testSlugs, 50)
	batches, err := g.Generate([]domain.Deal{d})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	batch := batches[0]
	if !strings.Contains(batch, "NULL, 'g', TRUE, NULL, NULL,") {
		t.Errorf("absent fields not encoded as NULL / boolean as TRUE:\n%s", batch)
	}
	if strings.Contains(batch, "''''") {
		t.Errorf("empty-string literal leaked into batch:\n%s", batch)
	}
}

func TestGenerator_ProductsPrecedeDeals(t *testing.T) {
	g := NewGenerator(testSlugs, 50)
	batches, err := g.Generate([]domain.Deal{
		testDeal("Rema 1000", "Laks"),
		testDeal("Netto", "Laks"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	batch := batches[0]
	productsAt := strings.Index(batch, "INSERT INTO products")
	dealsAt := strings.Index(batch, "INSERT INTO deals")
	if productsAt == -1 || dealsAt == -1 || productsAt > dealsAt {
		t.Errorf("products must be inserted before deals:\n%s", batch)
	}

	// The same (name, category) from two stores yields one product row.
	if got := strings.Count(batch, "('Laks', (SELECT id FROM categories_map"); got != 1 {
		t.Errorf("product inserted %d times, want 1", got)
	}
}

func TestGenerator_UnknownStore(t *testing.T) {
	g := NewGenerator(testSlugs, 50)

	_, err := g.Generate([]domain.Deal{testDeal("Bilka", "Laks")})
	if err == nil {
		t.Fatal("expected error for unknown store")
	}

	var unknownStore *constants.UnknownStoreError
	if !errors.As(err, &unknownStore) {
		t.Fatalf("error type = %T, want UnknownStoreError", err)
	}
	if unknownStore.StoreName != "Bilka" {
		t.Errorf("error names store %q, want Bilka", unknownStore.StoreName)
	}
}

func TestGenerator_EachBatchIsTerminatedStatement(t *testing.T) {
	deals := make([]domain.Deal, 0, 7)
	for i := 0; i < 7; i++ {
		deals = append(deals, testDeal("Netto", fmt.Sprintf("Vare %d", i)))
	}

	g := NewGenerator(testSlugs, 3)
	batches, err := g.Generate(deals)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}

	for i, batch := range batches {
		if !strings.HasPrefix(batch, "-- deals batch") {
			t.Errorf("batch %d missing header", i)
		}
		if !strings.Contains(batch, "WITH") || !strings.HasSuffix(strings.TrimSpace(batch), ";") {
			t.Errorf("batch %d is not a complete statement", i)
		}
	}
}

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/logger"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store/xpgx"
)

type productDBKey struct {
	name       string
	categoryID int64
}

// InsertDeals upserts the deduplicated products, resolves their generated
// ids, then inserts the deals referencing them. Products come before deals
// inside one call so the foreign keys always resolve.
func (s *store) InsertDeals(
	ctx context.Context,
	storeIDs map[string]int64,
	products []domain.Product,
	deals []domain.Deal,
) (int, error) {
	if len(deals) == 0 {
		return 0, nil
	}

	categoryIDs, err := s.ListCategoryIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("ListCategoryIDs: %w", err)
	}

	productIDs, err := s.insertProducts(ctx, categoryIDs, products)
	if err != nil {
		return 0, fmt.Errorf("insertProducts: %w", err)
	}

	query := builder().Insert(tableDeals).
		Columns("product_id", "store_id", "original_name", "price",
			"quantity", "price_per_unit", "unit_type", "is_app_price",
			"valid_from", "valid_to", "scraped_at")

	for i := range deals {
		d := &deals[i]

		storeID, ok := storeIDs[d.StoreName]
		if !ok {
			return 0, fmt.Errorf("no store id resolved for store %q", d.StoreName)
		}
		productID, ok := productIDs[productDBKey{name: d.NormalizedName, categoryID: categoryIDs[d.Category]}]
		if !ok {
			return 0, fmt.Errorf("no product id resolved for %q in category %q", d.NormalizedName, d.Category)
		}

		var pricePerUnit any
		if d.PricePerUnit != nil {
			pricePerUnit = d.PricePerUnit.String()
		}

		query = query.Values(productID, storeID, d.OriginalName, d.Price.String(),
			nullIfEmpty(d.Quantity), pricePerUnit, nullIfEmpty(d.UnitType), d.IsAppPrice,
			d.ValidFrom, d.ValidTo, d.ScrapedAt)
	}

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		logger.Errorf(ctx, "insert deals: %s", err.Error())
		return 0, wrapErr(err)
	}

	return len(deals), nil
}

func (s *store) insertProducts(
	ctx context.Context,
	categoryIDs map[string]int64,
	products []domain.Product,
) (map[productDBKey]int64, error) {
	query := builder().Insert(tableProducts).
		Columns("name", "category_id")

	names := make([]string, 0, len(products))
	for _, p := range products {
		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			return nil, fmt.Errorf("category %q not present in categories table", p.Category)
		}
		query = query.Values(p.Name, categoryID)
		names = append(names, p.Name)
	}

	query = query.Suffix(`on conflict (name, category_id) do nothing`)

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		return nil, wrapErr(err)
	}

	selectQuery := builder().Select(productColumns...).
		From(tableProducts).
		Where(sq.Eq{"name": names})

	selected, err := xpgx.Selectx[domain.ProductRow](ctx, s.pool, selectQuery)
	if err != nil {
		return nil, wrapErr(err)
	}

	ids := make(map[productDBKey]int64, len(selected))
	for _, row := range selected {
		ids[productDBKey{name: row.Name, categoryID: row.CategoryID}] = row.ID
	}

	return ids, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

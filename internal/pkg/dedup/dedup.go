package dedup

import "github.com/FellowDalton/foodplan-ingest/internal/domain"

// Products collapses deals sharing (normalized_name, category) into one
// Product per key, regardless of how many stores reference it. First-seen
// order is preserved so generated SQL stays stable across runs.
func Products(deals []domain.Deal) []domain.Product {
	seen := make(map[domain.ProductKey]struct{}, len(deals))
	products := make([]domain.Product, 0, len(deals))

	for i := range deals {
		key := deals[i].ProductKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		products = append(products, domain.Product{
			Name:     key.NormalizedName,
			Category: key.Category,
		})
	}

	return products
}

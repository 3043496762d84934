package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store/xpgx"
)

var (
	storeColumns    = []string{"id", "name", "slug", "created_at", "updated_at"}
	categoryColumns = []string{"id", "name", "created_at", "updated_at"}
	productColumns  = []string{"id", "name", "category_id", "created_at", "updated_at"}
)

func (s *store) GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	query := builder().Select(storeColumns...).
		From(tableStores).
		Where(sq.Eq{"slug": slug})

	selected, err := xpgx.Getx[domain.Store](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("get store slug-%s: %w", slug, wrapErr(err))
	}

	return selected, nil
}

func (s *store) ListStores(ctx context.Context) ([]*domain.Store, error) {
	query := builder().Select(storeColumns...).
		From(tableStores).
		OrderBy("name")

	selected, err := xpgx.Selectx[domain.Store](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListCategoryIDs(ctx context.Context) (map[string]int64, error) {
	query := builder().Select(categoryColumns...).
		From(tableCategories)

	selected, err := xpgx.Selectx[domain.CategoryRow](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	ids := make(map[string]int64, len(selected))
	for _, c := range selected {
		ids[c.Name] = c.ID
	}

	return ids, nil
}

package store

import (
	"context"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
	ListCategoryIDs(ctx context.Context) (map[string]int64, error)
	InsertDeals(ctx context.Context, storeIDs map[string]int64, products []domain.Product, deals []domain.Deal) (int, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

package deals

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/dedup"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/logger"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/sqlgen"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store"
	"github.com/FellowDalton/foodplan-ingest/internal/service/normalizer"
)

type Service struct {
	store      store.Store
	normalizer *normalizer.Service
	generator  *sqlgen.Generator
	storeSlugs map[string]string
}

func NewService(st store.Store, cfg config.IngestConfig) *Service {
	return &Service{
		store:      st,
		normalizer: normalizer.NewService(normalizer.DefaultRules()),
		generator:  sqlgen.NewGenerator(cfg.StoreSlugs, cfg.BatchSize),
		storeSlugs: cfg.StoreSlugs,
	}
}

type ImportSummary struct {
	RunID    string `json:"run_id"`
	Stores   int    `json:"stores"`
	OffersIn int    `json:"offers_in"`
	Deals    int    `json:"deals"`
	Dropped  int    `json:"dropped"`
	Products int    `json:"products"`
	Inserted int    `json:"inserted"`
}

// Normalize runs every dataset through the normalizer and deduplicates the
// resulting deals into products. This is the single-threaded reduction step:
// product key order must stay first-seen-stable, so datasets are processed
// in input order.
func (s *Service) Normalize(datasets []dto.StoreDataset) ([]domain.Deal, []domain.Product) {
	total := 0
	for i := range datasets {
		total += len(datasets[i].Offers)
	}

	deals := make([]domain.Deal, 0, total)
	for i := range datasets {
		deals = append(deals, s.normalizer.NormalizeDataset(datasets[i])...)
	}

	return deals, dedup.Products(deals)
}

// ImportDatasets normalizes the datasets and writes the result through the
// store layer.
func (s *Service) ImportDatasets(ctx context.Context, datasets []dto.StoreDataset) (*ImportSummary, error) {
	runID := uuid.NewString()
	ctx = logger.WithFields(ctx, "run_id", runID)

	offersIn := 0
	for i := range datasets {
		offersIn += len(datasets[i].Offers)
	}

	deals, products := s.Normalize(datasets)

	storeIDs, err := s.resolveStoreIDs(ctx, deals)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.InsertDeals(ctx, storeIDs, products, deals)
	if err != nil {
		return nil, fmt.Errorf("store.InsertDeals: %w", err)
	}

	summary := &ImportSummary{
		RunID:    runID,
		Stores:   len(datasets),
		OffersIn: offersIn,
		Deals:    len(deals),
		Dropped:  offersIn - len(deals),
		Products: len(products),
		Inserted: inserted,
	}

	logger.Infof(ctx, "imported %d deals (%d products, %d offers dropped) from %d stores",
		summary.Inserted, summary.Products, summary.Dropped, summary.Stores)

	return summary, nil
}

// GenerateSQL normalizes the datasets and renders them as standalone SQL
// batches instead of touching the database.
func (s *Service) GenerateSQL(ctx context.Context, datasets []dto.StoreDataset) ([]string, error) {
	deals, _ := s.Normalize(datasets)

	batches, err := s.generator.Generate(deals)
	if err != nil {
		return nil, fmt.Errorf("generator.Generate: %w", err)
	}

	logger.Infof(ctx, "generated %d sql batches for %d deals", len(batches), len(deals))

	return batches, nil
}

func (s *Service) ListStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.store.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListStores: %w", err)
	}
	return stores, nil
}

// resolveStoreIDs maps every distinct store name in the deal list onto the
// id of its pre-existing stores row. An unmapped name fails the whole
// import: deals are never silently dropped for an unknown store.
func (s *Service) resolveStoreIDs(ctx context.Context, deals []domain.Deal) (map[string]int64, error) {
	ids := make(map[string]int64)
	for i := range deals {
		name := deals[i].StoreName
		if _, ok := ids[name]; ok {
			continue
		}

		slug, ok := s.storeSlugs[name]
		if !ok {
			return nil, &constants.UnknownStoreError{StoreName: name}
		}

		st, err := s.store.GetStoreBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("GetStoreBySlug, slug-%s: %w", slug, err)
		}
		ids[name] = st.ID
	}

	return ids, nil
}

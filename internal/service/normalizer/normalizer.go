package normalizer

import (
	"github.com/shopspring/decimal"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
)

// Service turns raw scraped offers into Deals. Sub-extractor failures
// degrade to absent fields and never abort a batch; the only way an offer
// is not emitted is a missing price.
type Service struct {
	quantities *QuantityExtractor
	categories *Categorizer
}

func NewService(rules []CategoryRule) *Service {
	return &Service{
		quantities: NewQuantityExtractor(),
		categories: NewCategorizer(rules),
	}
}

func (s *Service) NormalizeDataset(ds dto.StoreDataset) []domain.Deal {
	deals := make([]domain.Deal, 0, len(ds.Offers))
	for _, offer := range ds.Offers {
		if deal, ok := s.NormalizeOffer(ds, offer); ok {
			deals = append(deals, *deal)
		}
	}
	return deals
}

func (s *Service) NormalizeOffer(ds dto.StoreDataset, offer dto.RawOffer) (*domain.Deal, bool) {
	if offer.Price == nil {
		return nil, false
	}

	price := decimal.NewFromFloat(*offer.Price)
	quantity, unit := s.quantities.Extract(offer.Heading, offer.Description)

	return &domain.Deal{
		StoreName:    ds.StoreName,
		Category:     s.categories.Categorize(offer.Heading, offer.Description),
		OriginalName: offer.Heading,
		// Pack-size tokens are not stripped from the normalized name, so
		// differently sized variants of the same product stay separate
		// products.
		NormalizedName: offer.Heading,
		Price:          price,
		Quantity:       quantity,
		UnitType:       unit,
		PricePerUnit:   UnitPrice(price, quantity, unit),
		IsAppPrice:     IsAppPrice(offer.Heading, offer.Description),
		ValidFrom:      ds.ValidFrom,
		ValidTo:        ds.ValidTo,
		ScrapedAt:      ds.ScrapedAt,
	}, true
}

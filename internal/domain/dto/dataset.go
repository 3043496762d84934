package dto

import "time"

// RawOffer is a single scraped promotional record as delivered by the
// publication feed. Price is a pointer: offers without a price are dropped
// during normalization, not rejected at the transport edge.
type RawOffer struct {
	Heading     string   `json:"heading" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// StoreDataset is one store's scrape batch. Validity dates are constant for
// the whole batch and may be absent when the publication does not carry them.
type StoreDataset struct {
	StoreName  string     `json:"store_name" validate:"required"`
	ScrapedAt  time.Time  `json:"scraped_at"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidTo    *time.Time `json:"valid_to,omitempty"`
	WeekNumber int        `json:"week_number,omitempty"`
	Offers     []RawOffer `json:"deals" validate:"dive"`
}

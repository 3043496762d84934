package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitType = string

const (
	UnitGram       UnitType = "g"
	UnitKilogram   UnitType = "kg"
	UnitMilliliter UnitType = "ml"
	UnitCentiliter UnitType = "cl"
	UnitLiter      UnitType = "l"
	UnitPiece      UnitType = "stk"
)

// Deal is a normalized offer. Immutable once assembled; PricePerUnit is nil
// when it could not be derived from quantity and unit.
type Deal struct {
	StoreName      string           `json:"store_name"`
	Category       string           `json:"category"`
	OriginalName   string           `json:"original_name"`
	NormalizedName string           `json:"normalized_name"`
	Price          decimal.Decimal  `json:"price"`
	Quantity       string           `json:"quantity"`
	UnitType       UnitType         `json:"unit_type"`
	PricePerUnit   *decimal.Decimal `json:"price_per_unit,omitempty"`
	IsAppPrice     bool             `json:"is_app_price"`
	ValidFrom      *time.Time       `json:"valid_from,omitempty"`
	ValidTo        *time.Time       `json:"valid_to,omitempty"`
	ScrapedAt      time.Time        `json:"scraped_at"`
}

// ProductKey identifies one deduplicated product across every store feed.
type ProductKey struct {
	NormalizedName string
	Category       string
}

func (d *Deal) ProductKey() ProductKey {
	return ProductKey{NormalizedName: d.NormalizedName, Category: d.Category}
}

type Product struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Store struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CategoryRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ProductRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	CategoryID int64     `db:"category_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

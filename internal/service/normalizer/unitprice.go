package normalizer

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
)

var quantityNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// UnitPrice converts an offer price into a price per canonical base unit:
// kg for weights, l for volumes, piece for counts. Returns nil instead of
// an error on any malformed input so a bad quantity never aborts a batch.
func UnitPrice(price decimal.Decimal, quantity string, unit domain.UnitType) *decimal.Decimal {
	if quantity == "" || unit == "" {
		return nil
	}

	m := quantityNumberRe.FindString(quantity)
	if m == "" {
		return nil
	}
	qty, err := decimal.NewFromString(decimalSeparatorToDot(m))
	if err != nil || qty.IsZero() {
		return nil
	}

	var perUnit decimal.Decimal
	switch unit {
	case domain.UnitGram:
		perUnit = price.Div(qty).Mul(thousand)
	case domain.UnitKilogram:
		perUnit = price.Div(qty)
	case domain.UnitMilliliter:
		perUnit = price.Div(qty).Mul(thousand)
	case domain.UnitCentiliter:
		perUnit = price.Div(qty).Mul(hundred)
	case domain.UnitLiter:
		perUnit = price.Div(qty)
	case domain.UnitPiece:
		perUnit = price.Div(qty)
	default:
		return nil
	}

	perUnit = perUnit.Round(2)
	if perUnit.IsZero() {
		return nil
	}
	return &perUnit
}

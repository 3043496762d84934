package sqlgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/dedup"
)

const DefaultBatchSize = 50

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// Generator renders deduplicated deals into standalone SQL batches. Each
// batch is a single statement: CTEs resolve store and category ids, insert
// the products the batch's deals reference, then insert the deals against
// the resolved ids. Generated product ids are therefore never read back
// between statements.
//
// Category existence is not checked here: a deal naming an unknown category
// fails only when the consuming database executes the batch.
type Generator struct {
	storeSlugs map[string]string
	batchSize  int
}

// NewGenerator copies storeSlugs so later mutation by the caller cannot
// change classification of in-flight batches.
func NewGenerator(storeSlugs map[string]string, batchSize int) *Generator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	slugs := make(map[string]string, len(storeSlugs))
	for name, slug := range storeSlugs {
		slugs[name] = slug
	}
	return &Generator{storeSlugs: slugs, batchSize: batchSize}
}

// Generate splits deals into batches of at most batchSize and renders each
// as one executable statement. Every deal appears in exactly one batch.
func (g *Generator) Generate(deals []domain.Deal) ([]string, error) {
	for i := range deals {
		if _, ok := g.storeSlugs[deals[i].StoreName]; !ok {
			return nil, &constants.UnknownStoreError{StoreName: deals[i].StoreName}
		}
	}

	batchCount := (len(deals) + g.batchSize - 1) / g.batchSize
	batches := make([]string, 0, batchCount)
	for start := 0; start < len(deals); start += g.batchSize {
		end := start + g.batchSize
		if end > len(deals) {
			end = len(deals)
		}
		batches = append(batches, g.renderBatch(deals[start:end], len(batches)+1, batchCount))
	}

	return batches, nil
}

func (g *Generator) renderBatch(deals []domain.Deal, n, total int) string {
	products := dedup.Products(deals)

	var b strings.Builder
	fmt.Fprintf(&b, "-- deals batch %d of %d (%d deals, %d products)\n", n, total, len(deals), len(products))
	b.WriteString("WITH\n")
	b.WriteString("  stores_map AS (\n    SELECT id, slug FROM stores\n  ),\n")
	b.WriteString("  categories_map AS (\n    SELECT id, name FROM categories\n  ),\n")

	b.WriteString("  inserted_products AS (\n")
	b.WriteString("    INSERT INTO products (name, category_id)\n    VALUES\n")
	for i, p := range products {
		fmt.Fprintf(&b, "      (%s, (SELECT id FROM categories_map WHERE name = %s))",
			quote(p.Name), quote(p.Category))
		if i < len(products)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    ON CONFLICT (name, category_id) DO NOTHING\n")
	b.WriteString("    RETURNING id, name, category_id\n  ),\n")

	// Rows inserted in this statement are not visible through the products
	// table itself, hence the union.
	b.WriteString("  all_products AS (\n")
	b.WriteString("    SELECT id, name, category_id FROM inserted_products\n")
	b.WriteString("    UNION\n")
	b.WriteString("    SELECT id, name, category_id FROM products\n  )\n")

	b.WriteString("INSERT INTO deals (\n")
	b.WriteString("  product_id, store_id, original_name, price,\n")
	b.WriteString("  quantity, price_per_unit, unit_type, is_app_price,\n")
	b.WriteString("  valid_from, valid_to, scraped_at\n)\nVALUES\n")
	for i := range deals {
		b.WriteString(g.renderDeal(&deals[i]))
		if i < len(deals)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(";\n")

	return b.String()
}

func (g *Generator) renderDeal(d *domain.Deal) string {
	slug := g.storeSlugs[d.StoreName]

	productID := fmt.Sprintf(
		"(SELECT id FROM all_products WHERE name = %s AND category_id = (SELECT id FROM categories_map WHERE name = %s) LIMIT 1)",
		quote(d.NormalizedName), quote(d.Category))
	storeID := fmt.Sprintf("(SELECT id FROM stores_map WHERE slug = %s)", quote(slug))

	return fmt.Sprintf("  (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)",
		productID,
		storeID,
		quote(d.OriginalName),
		d.Price.String(),
		quoteOrNull(d.Quantity),
		decimalOrNull(d.PricePerUnit),
		quoteOrNull(d.UnitType),
		boolLiteral(d.IsAppPrice),
		dateOrNull(d.ValidFrom),
		dateOrNull(d.ValidTo),
		quote(d.ScrapedAt.UTC().Format(timestampLayout)),
	)
}

// quote renders a SQL string literal, doubling embedded single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteOrNull(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func decimalOrNull(d *decimal.Decimal) string {
	if d == nil {
		return "NULL"
	}
	return d.String()
}

func dateOrNull(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return quote(t.Format(dateLayout))
}

func boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FellowDalton/foodplan-ingest/internal/domain"
)

const (
	defaultQuantity = "1 stk"
	defaultUnit     = domain.UnitPiece
)

// quantityPattern pairs a regexp with the renderer that turns its capture
// groups into a canonical quantity string and unit.
type quantityPattern struct {
	re     *regexp.Regexp
	render func(m []string) (string, domain.UnitType)
}

// QuantityExtractor scans offer text with an ordered pattern cascade. The
// first matching pattern wins even when several unit tokens occur in the
// same text, so weight beats volume beats piece counts.
type QuantityExtractor struct {
	patterns []quantityPattern
}

func NewQuantityExtractor() *QuantityExtractor {
	return &QuantityExtractor{
		patterns: []quantityPattern{
			{
				re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|g)\b`),
				render: func(m []string) (string, domain.UnitType) {
					unit := strings.ToLower(m[2])
					return fmt.Sprintf("%s %s", decimalSeparatorToDot(m[1]), unit), unit
				},
			},
			{
				re: regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(l|ml|cl)\b`),
				render: func(m []string) (string, domain.UnitType) {
					unit := strings.ToLower(m[2])
					return fmt.Sprintf("%s %s", decimalSeparatorToDot(m[1]), unit), unit
				},
			},
			{
				// "2 stk", "3 pak", "4 pack" and the hyphenated variants.
				// The source unit word is discarded: piece quantities are
				// always rendered as "<n> stk".
				re: regexp.MustCompile(`(?i)(\d+)\s*[-‐]?\s*(stk|pak|pack)`),
				render: func(m []string) (string, domain.UnitType) {
					return fmt.Sprintf("%s stk", m[1]), domain.UnitPiece
				},
			},
			{
				// Multi-pack shorthand like "8-pak". Mostly shadowed by the
				// pattern above but kept for separator variants it misses.
				re: regexp.MustCompile(`(?i)(\d+)\s*[-‐]\s*pak`),
				render: func(m []string) (string, domain.UnitType) {
					return fmt.Sprintf("%s stk", m[1]), domain.UnitPiece
				},
			},
		},
	}
}

// Extract returns the canonical quantity and unit found in heading and
// description. It is total: when nothing matches, every offer counts as a
// single piece.
func (e *QuantityExtractor) Extract(heading, description string) (string, domain.UnitType) {
	text := heading + " " + description
	for _, p := range e.patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return p.render(m)
		}
	}
	return defaultQuantity, defaultUnit
}

// decimalSeparatorToDot normalizes the comma decimal separator used in
// Danish offer text.
func decimalSeparatorToDot(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

package normalizer

import "strings"

const DefaultCategory = "Special Offers"

// CategoryRule matches when any keyword occurs as a substring of the
// case-folded offer text. RequireToken, when set, must additionally be
// present for the rule to fire.
type CategoryRule struct {
	Name         string
	Keywords     []string
	RequireToken string
}

// Categorizer assigns exactly one category per offer. Rules are evaluated
// in slice order and the first hit wins, so the rule order is the tie-break
// policy and changing it changes classification.
type Categorizer struct {
	rules    []CategoryRule
	fallback string
}

func NewCategorizer(rules []CategoryRule) *Categorizer {
	return &Categorizer{rules: rules, fallback: DefaultCategory}
}

func (c *Categorizer) Categorize(heading, description string) string {
	text := strings.ToLower(heading + " " + description)

	for _, rule := range c.rules {
		if rule.RequireToken != "" && !strings.Contains(text, rule.RequireToken) {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Name
			}
		}
	}

	return c.fallback
}

// DefaultRules is the taxonomy tuned for Danish grocery publications.
// Frozen Foods demands "isbar" on top of its keywords because bare "is"
// (ice) is a substring of too many unrelated words.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{Name: "Meat & Poultry", Keywords: []string{"kød", "gris", "okse", "kalv", "lam", "kylling", "and", "kotelet", "steg", "hakket", "bacon", "hamburgerryg", "nakke", "culotte"}},
		{Name: "Deli & Cold Cuts", Keywords: []string{"pølse", "leverpostej", "spegepølse", "pålæg", "salat"}},
		{Name: "Seafood", Keywords: []string{"laks", "fisk", "reje", "sild", "fiske"}},
		{Name: "Bread & Bakery", Keywords: []string{"brød", "baguette", "rugbrød", "æbleskiver"}},
		{Name: "Dairy & Eggs", Keywords: []string{"æg", "ost", "yoghurt", "mælk", "feta", "mozzarella", "fraiche", "smør", "protein mousse", "drikkeyoghurt", "actimel", "philadelphia", "buko", "smelteost"}},
		{Name: "Fruits & Vegetables", Keywords: []string{"banan", "tomat", "frugt", "grønt", "mango", "appelsin", "dadler", "figner", "porre", "champignon", "granatæble"}},
		{Name: "Pasta & International", Keywords: []string{"pasta", "specialiteter", "gyros"}},
		{Name: "Pantry & Condiments", Keywords: []string{"sauce", "remoulade", "mayonnaise", "ærter", "kartofler", "suppe", "passata", "mel"}},
		{Name: "Spreads & Butter", Keywords: []string{"kærgården", "marmelade"}},
		{Name: "Sweets & Snacks", Keywords: []string{"chips", "slik", "marabou", "chocolate", "chokolade", "kiks", "cookies", "flødeboller", "nødder", "granola"}},
		{Name: "Coffee & Tea", Keywords: []string{"kaffe", "te", "chai latte"}},
		{Name: "Beverages", Keywords: []string{"sodavand", "øl", "vin", "gløgg", "energy", "vitamin well", "pepsi", "coca-cola", "faxe", "juice", "drik"}},
		{Name: "Frozen Foods", Keywords: []string{"is", "pizza", "tø og server", "færdigret"}, RequireToken: "isbar"},
		{Name: "Plant-Based", Keywords: []string{"plantedrik", "naturli", "den grønne slagter"}},
	}
}

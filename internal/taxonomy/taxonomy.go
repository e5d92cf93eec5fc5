// Package taxonomy holds the static mapping from procedure categories to
// their natural-language synonyms. The mapping is read-only process-wide
// configuration; it can be replaced wholesale from a YAML file at startup
// but never mutated afterwards.
package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy maps a procedure category to its synonym phrases.
type Taxonomy struct {
	categories map[string][]string
	order      []string // category iteration order, first-seen wins ties
}

// Default returns the built-in procedure taxonomy.
func Default() *Taxonomy {
	t := &Taxonomy{categories: make(map[string][]string)}
	for _, c := range []struct {
		name     string
		synonyms []string
	}{
		{"fertility", []string{
			"ivf", "in-vitro fertilization", "fertility treatment",
			"infertility treatment", "assisted reproductive technology",
			"ivf procedure", "fertility therapy", "artificial insemination",
			"reproductive assistance", "infertility consultation",
			"fertility consultation", "assisted reproduction", "icsi", "iui",
		}},
		{"maternity", []string{
			"maternity", "prenatal", "pregnancy", "delivery", "childbirth",
			"antenatal care", "obstetric care", "maternal health",
			"pregnancy care", "prenatal checkup", "maternity benefits",
		}},
		{"cardiac", []string{
			"heart surgery", "cardiac surgery", "angioplasty",
			"bypass surgery", "cardiac procedure", "heart operation",
			"cardiovascular surgery", "coronary surgery", "heart treatment",
			"cardiac care", "heart bypass",
		}},
		{"cancer", []string{
			"cancer treatment", "chemotherapy", "oncology",
			"tumor treatment", "cancer therapy", "radiation therapy",
			"cancer surgery", "oncological care", "chemo", "radiotherapy",
			"cancer care",
		}},
		{"emergency", []string{
			"emergency care", "trauma care", "accident treatment",
			"urgent care", "emergency surgery", "critical care",
			"emergency medical care", "trauma surgery", "emergency treatment",
		}},
	} {
		t.categories[c.name] = c.synonyms
		t.order = append(t.order, c.name)
	}
	return t
}

// LoadFile reads a category→synonyms mapping from a YAML file. Categories are
// iterated in sorted order so tie-breaking stays deterministic across runs.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	raw := make(map[string][]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	t := &Taxonomy{categories: make(map[string][]string, len(raw))}
	for name, synonyms := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || len(synonyms) == 0 {
			continue
		}
		cleaned := make([]string, 0, len(synonyms))
		for _, s := range synonyms {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			t.categories[name] = cleaned
			t.order = append(t.order, name)
		}
	}
	sort.Strings(t.order)

	if len(t.order) == 0 {
		return nil, fmt.Errorf("taxonomy file %s defines no categories", path)
	}
	return t, nil
}

// Categories returns category names in iteration order.
func (t *Taxonomy) Categories() []string {
	return t.order
}

// Synonyms returns the synonym phrases for a category, or nil.
func (t *Taxonomy) Synonyms(category string) []string {
	return t.categories[category]
}

// Match describes the best taxonomy hit for a query.
type Match struct {
	Category string
	Synonym  string
	Score    int
}

// BestMatch scores every synonym found as a substring of the lowercased
// query by len(synonym)*2 and returns the highest-scoring hit. Ties keep the
// first-seen category. Returns false when no synonym occurs in the query.
func (t *Taxonomy) BestMatch(query string) (Match, bool) {
	lower := strings.ToLower(query)

	var best Match
	found := false
	for _, category := range t.order {
		for _, synonym := range t.categories[category] {
			if !strings.Contains(lower, synonym) {
				continue
			}
			score := len(synonym) * 2
			if !found || score > best.Score {
				best = Match{Category: category, Synonym: synonym, Score: score}
				found = true
			}
		}
	}
	return best, found
}

package billing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"invoicely/client/internal/domain"
)

var searchCollator = collate.New(language.Und, collate.IgnoreCase)

// SearchItems filters items by case-insensitive substring match on the name.
// Items whose name starts with the term sort before items that merely
// contain it; within each group, names order alphabetically under a
// case-insensitive collation.
func SearchItems(items []domain.CatalogItem, term string) []domain.CatalogItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matched []domain.CatalogItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			matched = append(matched, item)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matched[i].Name), term)
		pj := strings.HasPrefix(strings.ToLower(matched[j].Name), term)
		if pi != pj {
			return pi
		}
		return searchCollator.CompareString(matched[i].Name, matched[j].Name) < 0
	})
	return matched
}

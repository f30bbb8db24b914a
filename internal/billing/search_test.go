package billing

import (
	"testing"

	"invoicely/client/internal/domain"
)

func catalogOf(names ...string) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(names))
	for _, name := range names {
		items = append(items, domain.CatalogItem{ID: "item-" + name, Name: name, Price: dec("1"), Unit: domain.UnitKg})
	}
	return items
}

func namesOf(items []domain.CatalogItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestSearchPrefixMatchesSortFirst(t *testing.T) {
	got := namesOf(SearchItems(catalogOf("Rice", "Curry", "Brick"), "ri"))
	want := []string{"Rice", "Brick"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	got := namesOf(SearchItems(catalogOf("Mustard Oil"), "MUSTARD"))
	if len(got) != 1 || got[0] != "Mustard Oil" {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

func TestSearchAlphabeticalWithinGroups(t *testing.T) {
	got := namesOf(SearchItems(catalogOf("Mango", "apricot", "Banana", "Apple"), "a"))
	want := []string{"Apple", "apricot", "Banana", "Mango"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSearchEmptyTermMatchesNothing(t *testing.T) {
	if got := SearchItems(catalogOf("Rice"), "   "); got != nil {
		t.Fatalf("expected no results for blank term, got %v", got)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"invoicely/client/internal/cache"
	"invoicely/client/internal/domain"
	"invoicely/client/internal/store"
	"invoicely/client/internal/store/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// countingCache records cache traffic so tests can assert on hit and
// invalidation behavior without a redis server.
type countingCache struct {
	items       []domain.CatalogItem
	ok          bool
	gets        int
	sets        int
	invalidates int
}

func (c *countingCache) GetItems(ctx context.Context) ([]domain.CatalogItem, bool, error) {
	c.gets++
	return c.items, c.ok, nil
}

func (c *countingCache) SetItems(ctx context.Context, items []domain.CatalogItem, ttl time.Duration) error {
	c.sets++
	c.items = items
	c.ok = true
	return nil
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.invalidates++
	c.items = nil
	c.ok = false
	return nil
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	repo := memory.New()
	return New(repo, cache.NoopCatalogCache{}, time.Minute), repo
}

func seedItem(t *testing.T, repo *memory.Store, name, price string) *domain.CatalogItem {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), domain.ItemCreateRequest{
		Name: name, Price: dec(price), Unit: domain.UnitKg,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return item
}

func TestListItemsSortedAlphabetically(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Wheat Flour", "apricot", "Rice", "Apple"} {
		seedItem(t, repo, name, "10")
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"Apple", "apricot", "Rice", "Wheat Flour"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i := range want {
		if items[i].Name != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], items[i].Name)
		}
	}
}

func TestListItemsUsesCacheWhenFresh(t *testing.T) {
	repo := memory.New()
	seedItem(t, repo, "Rice", "62")

	counting := &countingCache{}
	svc := New(repo, counting, time.Minute)
	ctx := context.Background()

	if _, err := svc.ListItems(ctx); err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	if counting.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", counting.sets)
	}

	seedItem(t, repo, "Sugar", "44")
	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected cached catalog to be served, got %d items", len(items))
	}
	if counting.sets != 1 {
		t.Fatalf("expected no refill on a cache hit, got %d sets", counting.sets)
	}
}

func TestCatalogMutationsInvalidateCache(t *testing.T) {
	repo := memory.New()
	item := seedItem(t, repo, "Rice", "62")

	counting := &countingCache{}
	svc := New(repo, counting, time.Minute)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, domain.ItemCreateRequest{Name: "Sugar", Price: dec("44"), Unit: domain.UnitKg}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	price := dec("65")
	if _, err := svc.UpdateItem(ctx, item.ID, domain.ItemUpdateRequest{Price: &price}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if counting.invalidates != 3 {
		t.Fatalf("expected 3 invalidations, got %d", counting.invalidates)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	negative := dec("-1")
	cases := []domain.ItemCreateRequest{
		{Name: "   ", Price: dec("10"), Unit: domain.UnitKg},
		{Name: "Rice", Price: dec("-1"), Unit: domain.UnitKg},
		{Name: "Rice", Price: dec("10"), Unit: domain.Unit("bag")},
		{Name: "Rice", Price: dec("10"), MRP: &negative, Unit: domain.UnitKg},
	}
	for i, req := range cases {
		if _, err := svc.CreateItem(ctx, req); !errors.Is(err, store.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCreateItemTrimsName(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateItem(context.Background(), domain.ItemCreateRequest{
		Name: "  Rice  ", Price: dec("62"), Unit: domain.UnitKg,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Rice" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestUpdateItemRequiresAField(t *testing.T) {
	svc, repo := newTestService(t)
	item := seedItem(t, repo, "Rice", "62")

	if _, err := svc.UpdateItem(context.Background(), item.ID, domain.ItemUpdateRequest{}); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty update, got %v", err)
	}
}

func TestSubmitInvoiceValidation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	item := seedItem(t, repo, "Rice", "10")
	line := domain.NewLineItem(*item, dec("2"), item.Price, false)

	if _, err := svc.SubmitInvoice(ctx, "   ", []domain.LineItem{line}); !errors.Is(err, ErrCustomerNameRequired) {
		t.Fatalf("expected ErrCustomerNameRequired, got %v", err)
	}
	if _, err := svc.SubmitInvoice(ctx, "Ravi", nil); !errors.Is(err, ErrEmptyBill) {
		t.Fatalf("expected ErrEmptyBill, got %v", err)
	}

	if invoices, _ := svc.ListInvoices(ctx); len(invoices) != 0 {
		t.Fatalf("expected no invoices after rejected submits")
	}
}

func TestSubmitInvoiceRoundTrip(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	itemA := seedItem(t, repo, "Rice", "10")
	itemB := seedItem(t, repo, "Sugar", "5")

	override := dec("4")
	lines := []domain.LineItem{
		domain.NewLineItem(*itemA, dec("2"), itemA.Price, false),
		domain.NewLineItem(*itemB, dec("3"), override, true),
	}
	if !lines[0].Total.Equal(dec("20")) || !lines[1].Total.Equal(dec("12")) {
		t.Fatalf("unexpected line totals: %s, %s", lines[0].Total, lines[1].Total)
	}

	inv, err := svc.SubmitInvoice(ctx, "  Ravi  ", lines)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if inv.CustomerName != "Ravi" {
		t.Fatalf("expected trimmed customer name, got %q", inv.CustomerName)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(inv.Items))
	}
	if !inv.GrandTotal().Equal(dec("32")) {
		t.Fatalf("expected grand total 32, got %s", inv.GrandTotal())
	}
	if !inv.Items[1].IsSpecialPrice || !inv.Items[1].Price.Equal(dec("4")) {
		t.Fatalf("expected override price to be persisted: %+v", inv.Items[1])
	}
}

func TestListInvoicesNewestFirst(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	item := seedItem(t, repo, "Rice", "10")
	line := domain.NewLineItem(*item, dec("1"), item.Price, false)

	var ids []string
	for _, name := range []string{"First", "Second", "Third"} {
		inv, err := svc.SubmitInvoice(ctx, name, []domain.LineItem{line})
		if err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
		ids = append(ids, inv.ID)
	}

	invoices, err := svc.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(invoices) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(invoices))
	}
	for i := range invoices {
		if invoices[i].ID != ids[len(ids)-1-i] {
			t.Fatalf("expected newest first, got order %v", invoiceIDs(invoices))
		}
	}
}

func TestDeleteInvoiceRemovesExactlyOne(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	item := seedItem(t, repo, "Rice", "10")
	line := domain.NewLineItem(*item, dec("1"), item.Price, false)

	first, err := svc.SubmitInvoice(ctx, "Keep", []domain.LineItem{line})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	second, err := svc.SubmitInvoice(ctx, "Drop", []domain.LineItem{line})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.DeleteInvoice(ctx, second.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	invoices, err := svc.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != first.ID {
		t.Fatalf("expected only %s to remain, got %v", first.ID, invoiceIDs(invoices))
	}

	if err := svc.DeleteInvoice(ctx, second.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func invoiceIDs(invoices []domain.Invoice) []string {
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	return ids
}

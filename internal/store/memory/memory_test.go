package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"invoicely/client/internal/domain"
	"invoicely/client/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUpdateItemIsPartial(t *testing.T) {
	s := New()
	ctx := context.Background()

	mrp := dec("70")
	created, err := s.CreateItem(ctx, domain.ItemCreateRequest{
		Name: "Rice", Price: dec("62"), MRP: &mrp, Unit: domain.UnitKg,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	price := dec("65")
	updated, err := s.UpdateItem(ctx, created.ID, domain.ItemUpdateRequest{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Price.Equal(dec("65")) {
		t.Fatalf("expected price 65, got %s", updated.Price)
	}
	if updated.MRP == nil || !updated.MRP.Equal(dec("70")) {
		t.Fatalf("expected MRP untouched by price-only update")
	}

	newMRP := dec("72")
	updated, err = s.UpdateItem(ctx, created.ID, domain.ItemUpdateRequest{MRP: &newMRP})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Price.Equal(dec("65")) {
		t.Fatalf("expected price untouched by mrp-only update")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	s := New()
	price := dec("1")
	if _, err := s.UpdateItem(context.Background(), "missing", domain.ItemUpdateRequest{Price: &price}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvoiceSnapshotImmuneToCatalogEdits(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateItem(ctx, domain.ItemCreateRequest{
		Name: "Rice", Price: dec("62"), Unit: domain.UnitKg,
	})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	line := domain.NewLineItem(*created, dec("2"), created.Price, false)
	inv, err := s.CreateInvoice(ctx, domain.InvoiceCreateRequest{
		CustomerName: "Ravi",
		Items:        []domain.LineItem{line},
	})
	if err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}

	newPrice := dec("99")
	if _, err := s.UpdateItem(ctx, created.ID, domain.ItemUpdateRequest{Price: &newPrice}); err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	invoices, err := s.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("list invoices failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != inv.ID {
		t.Fatalf("unexpected invoices: %+v", invoices)
	}
	if !invoices[0].Items[0].Price.Equal(dec("62")) || !invoices[0].Items[0].Total.Equal(dec("124")) {
		t.Fatalf("expected invoice line to keep its snapshot after catalog edit, got %+v", invoices[0].Items[0])
	}
}

func TestCreateItemValidation(t *testing.T) {
	s := New()
	ctx := context.Background()

	cases := []domain.ItemCreateRequest{
		{Name: "  ", Price: dec("1"), Unit: domain.UnitKg},
		{Name: "Rice", Price: dec("-1"), Unit: domain.UnitKg},
		{Name: "Rice", Price: dec("1"), Unit: domain.Unit("bag")},
	}
	for i, req := range cases {
		if _, err := s.CreateItem(ctx, req); !errors.Is(err, store.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSeededCatalogIsUsable(t *testing.T) {
	s := NewSeeded()
	items, err := s.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected seed items")
	}
	for _, item := range items {
		if item.ID == "" || item.Name == "" || !domain.ValidUnit(item.Unit) {
			t.Fatalf("bad seed item: %+v", item)
		}
	}
}

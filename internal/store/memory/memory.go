package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"invoicely/client/internal/domain"
	"invoicely/client/internal/store"
	"invoicely/client/internal/xid"
)

// Store is an in-memory stand-in for the remote API, used by tests and by
// demo mode when no API base URL is configured. It emulates the server-side
// behavior the client observes: id assignment, createdAt stamping, partial
// item updates, and last-write-wins on conflicting mutations.
type Store struct {
	mu         sync.RWMutex
	items      map[string]domain.CatalogItem
	invoices   map[string]domain.Invoice
	createdSeq int
}

func New() *Store {
	return &Store{
		items:    make(map[string]domain.CatalogItem),
		invoices: make(map[string]domain.Invoice),
	}
}

// NewSeeded returns a store pre-loaded with a small kirana catalog so the
// demo mode has something to sell.
func NewSeeded() *Store {
	s := New()
	seed := []struct {
		name  string
		price string
		mrp   string
		unit  domain.Unit
	}{
		{"Rice", "62", "70", domain.UnitKg},
		{"Sugar", "44", "", domain.UnitKg},
		{"Toor Dal", "148", "160", domain.UnitKg},
		{"Mustard Oil", "152", "165", domain.UnitLiters},
		{"Curry Leaves", "8", "", domain.UnitPieces},
		{"Eggs", "84", "", domain.UnitDozen},
		{"Wheat Flour", "35", "40", domain.UnitKg},
		{"Tea Powder", "120", "135", domain.UnitGram},
	}
	for _, row := range seed {
		price := decimal.RequireFromString(row.price)
		req := domain.ItemCreateRequest{Name: row.name, Price: price, Unit: row.unit}
		if row.mrp != "" {
			mrp := decimal.RequireFromString(row.mrp)
			req.MRP = &mrp
		}
		if _, err := s.CreateItem(context.Background(), req); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *Store) ListItems(_ context.Context) ([]domain.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CatalogItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) CreateItem(_ context.Context, req domain.ItemCreateRequest) (*domain.CatalogItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price.IsNegative() || !domain.ValidUnit(req.Unit) {
		return nil, store.ErrInvalidInput
	}
	if req.MRP != nil && req.MRP.IsNegative() {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.CatalogItem{
		ID:    xid.New("item"),
		Name:  name,
		Price: req.Price,
		MRP:   req.MRP,
		Unit:  req.Unit,
	}
	s.items[item.ID] = item
	return &item, nil
}

func (s *Store) UpdateItem(_ context.Context, id string, req domain.ItemUpdateRequest) (*domain.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, store.ErrInvalidInput
		}
		item.Price = *req.Price
	}
	if req.MRP != nil {
		if req.MRP.IsNegative() {
			return nil, store.ErrInvalidInput
		}
		item.MRP = req.MRP
	}
	s.items[id] = item
	return &item, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) ListInvoices(_ context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		invoices = append(invoices, inv)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices, nil
}

func (s *Store) CreateInvoice(_ context.Context, req domain.InvoiceCreateRequest) (*domain.Invoice, error) {
	if strings.TrimSpace(req.CustomerName) == "" || len(req.Items) == 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.createdSeq++
	inv := domain.Invoice{
		ID:           xid.New("inv"),
		CustomerName: req.CustomerName,
		Items:        append([]domain.LineItem(nil), req.Items...),
		// Nudge the timestamp so invoices created in the same instant still
		// order deterministically by creation time.
		CreatedAt: time.Now().UTC().Add(time.Duration(s.createdSeq) * time.Microsecond),
	}
	s.invoices[inv.ID] = inv
	return &inv, nil
}

func (s *Store) DeleteInvoice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"invoicely/client/internal/cache"
	"invoicely/client/internal/domain"
	"invoicely/client/internal/store"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrEmptyBill            = errors.New("bill has no items")
)

var nameCollator = collate.New(language.Und, collate.IgnoreCase)

// Service wraps the remote repository with display ordering, input
// validation and catalog caching.
type Service struct {
	repo       store.Repository
	catalog    cache.CatalogCache
	catalogTTL time.Duration
}

func New(repo store.Repository, catalogCache cache.CatalogCache, catalogTTL time.Duration) *Service {
	if catalogTTL <= 0 {
		catalogTTL = 60 * time.Second
	}
	return &Service{
		repo:       repo,
		catalog:    catalogCache,
		catalogTTL: catalogTTL,
	}
}

// ListItems returns the catalog sorted alphabetically, case-insensitively.
// The sorted list is served from the cache when fresh; cache trouble is
// logged and otherwise ignored.
func (s *Service) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	if cached, ok, err := s.catalog.GetItems(ctx); err != nil {
		log.Printf("[service] WARN: catalog cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return nameCollator.CompareString(items[i].Name, items[j].Name) < 0
	})

	if err := s.catalog.SetItems(ctx, items, s.catalogTTL); err != nil {
		log.Printf("[service] WARN: catalog cache write failed: %v", err)
	}
	return items, nil
}

func (s *Service) CreateItem(ctx context.Context, req domain.ItemCreateRequest) (*domain.CatalogItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price.IsNegative() || !domain.ValidUnit(req.Unit) {
		return nil, store.ErrInvalidInput
	}
	if req.MRP != nil && req.MRP.IsNegative() {
		return nil, store.ErrInvalidInput
	}

	created, err := s.repo.CreateItem(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return created, nil
}

// UpdateItem applies a partial update; at least one of price or MRP must be
// set. The server's response is authoritative and is returned as-is.
func (s *Service) UpdateItem(ctx context.Context, id string, req domain.ItemUpdateRequest) (*domain.CatalogItem, error) {
	if req.Price == nil && req.MRP == nil {
		return nil, store.ErrInvalidInput
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, store.ErrInvalidInput
	}
	if req.MRP != nil && req.MRP.IsNegative() {
		return nil, store.ErrInvalidInput
	}

	updated, err := s.repo.UpdateItem(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ListInvoices returns persisted invoices newest first.
func (s *Service) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return invoices, nil
}

// SubmitInvoice persists the finished draft as a new invoice. The draft
// itself is left untouched; starting a new bill is a separate, explicit
// operator action.
func (s *Service) SubmitInvoice(ctx context.Context, customerName string, items []domain.LineItem) (*domain.Invoice, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrCustomerNameRequired
	}
	if len(items) == 0 {
		return nil, ErrEmptyBill
	}

	return s.repo.CreateInvoice(ctx, domain.InvoiceCreateRequest{
		CustomerName: customerName,
		Items:        items,
	})
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if err := s.catalog.Invalidate(ctx); err != nil {
		log.Printf("[service] WARN: catalog cache invalidation failed: %v", err)
	}
}

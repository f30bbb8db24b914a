package store

import (
	"context"
	"errors"

	"invoicely/client/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrRemoteUnavailable = errors.New("remote api unavailable")
)

// Repository is the remote invoicing API the client depends on. The server
// is authoritative for items and invoices; the client only mirrors responses.
// Concurrent edits from other sessions are not detected: the server applies
// whatever write arrives last.
type Repository interface {
	ListItems(ctx context.Context) ([]domain.CatalogItem, error)
	CreateItem(ctx context.Context, req domain.ItemCreateRequest) (*domain.CatalogItem, error)
	UpdateItem(ctx context.Context, id string, req domain.ItemUpdateRequest) (*domain.CatalogItem, error)
	DeleteItem(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	CreateInvoice(ctx context.Context, req domain.InvoiceCreateRequest) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

package cache

import (
	"context"
	"time"

	"invoicely/client/internal/domain"
)

// CatalogCache holds the fetched item list so repeated searches during bill
// assembly do not hit the remote API every time.
type CatalogCache interface {
	GetItems(ctx context.Context) ([]domain.CatalogItem, bool, error)
	SetItems(ctx context.Context, items []domain.CatalogItem, ttl time.Duration) error
	// Invalidate drops the cached list; called after any catalog mutation.
	Invalidate(ctx context.Context) error
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) GetItems(_ context.Context) ([]domain.CatalogItem, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetItems(_ context.Context, _ []domain.CatalogItem, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context) error {
	return nil
}

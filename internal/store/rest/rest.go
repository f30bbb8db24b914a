package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"invoicely/client/internal/domain"
	"invoicely/client/internal/store"
)

// Client implements store.Repository over the remote API's REST contract:
//
//	GET    /items
//	POST   /items
//	PUT    /items/{id}
//	DELETE /items/{id}
//	GET    /invoices
//	POST   /invoices
//	DELETE /invoices/{id}
//
// Requests carry no retry or cancellation logic beyond the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateItem(ctx context.Context, req domain.ItemCreateRequest) (*domain.CatalogItem, error) {
	var created domain.CatalogItem
	if err := c.do(ctx, http.MethodPost, "/items", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, req domain.ItemUpdateRequest) (*domain.CatalogItem, error) {
	var updated domain.CatalogItem
	if err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *Client) CreateInvoice(ctx context.Context, req domain.InvoiceCreateRequest) (*domain.Invoice, error) {
	var created domain.Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return store.ErrInvalidInput
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("remote api: %s %s returned %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

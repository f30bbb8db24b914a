// Package billing implements the draft bill: the locally persisted,
// in-progress list of line items assembled before an invoice is submitted.
package billing

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"invoicely/client/internal/domain"
	"invoicely/client/internal/keyval"
)

// Persisted state layout: two fixed keys, one holding the serialized line
// items and one holding the raw customer name.
const (
	draftItemsKey   = "billItems"
	customerNameKey = "customerName"
)

var (
	ErrNoSelection     = errors.New("no item selected")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrIndexOutOfRange = errors.New("line item index out of range")
)

// Builder accumulates line items for one draft bill. Every mutation mirrors
// the full state into the provided keyval.Store so the draft survives a
// restart; the draft is exclusive to this device and never shared.
//
// Builder is not safe for concurrent use. All mutations happen on the UI
// event loop, which serializes them in the order the operator issues them.
type Builder struct {
	store        keyval.Store
	selection    *domain.CatalogItem
	items        []domain.LineItem
	customerName string
}

// NewBuilder restores any previously persisted draft. Restoration is
// best-effort: a missing or unparseable record yields an empty draft and is
// never surfaced as an error.
func NewBuilder(store keyval.Store) *Builder {
	b := &Builder{store: store}
	b.restore()
	return b
}

// SelectItem sets the active selection, replacing any previous one.
func (b *Builder) SelectItem(item domain.CatalogItem) {
	b.selection = &item
}

func (b *Builder) Selection() *domain.CatalogItem {
	return b.selection
}

func (b *Builder) ClearSelection() {
	b.selection = nil
}

// AddLineItem snapshots the active selection into a new line. overridePrice,
// when non-nil, replaces the catalog price and marks the line as a special
// price. The selection is cleared on success.
func (b *Builder) AddLineItem(quantity decimal.Decimal, overridePrice *decimal.Decimal) (domain.LineItem, error) {
	if b.selection == nil {
		return domain.LineItem{}, ErrNoSelection
	}
	if !quantity.IsPositive() {
		return domain.LineItem{}, ErrInvalidQuantity
	}

	price := b.selection.Price
	special := false
	if overridePrice != nil {
		price = *overridePrice
		special = true
	}

	line := domain.NewLineItem(*b.selection, quantity, price, special)
	b.items = append(b.items, line)
	b.selection = nil
	b.persist()
	return line, nil
}

// RemoveLineItem removes the line at index, preserving the order of the rest.
func (b *Builder) RemoveLineItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return ErrIndexOutOfRange
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	b.persist()
	return nil
}

// Items returns a copy of the line items in insertion order.
func (b *Builder) Items() []domain.LineItem {
	return append([]domain.LineItem(nil), b.items...)
}

func (b *Builder) CustomerName() string {
	return b.customerName
}

func (b *Builder) SetCustomerName(name string) {
	b.customerName = name
	b.persist()
}

// TotalAmount is a pure fold over the stored line totals. It is recomputed
// on every call, never cached.
func (b *Builder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(item.Total)
	}
	return total
}

// Draft returns the current state as a DraftBill.
func (b *Builder) Draft() domain.DraftBill {
	return domain.DraftBill{
		CustomerName: b.customerName,
		Items:        b.Items(),
	}
}

// Clear empties the draft and discards the persisted snapshot.
func (b *Builder) Clear() {
	b.items = nil
	b.customerName = ""
	b.selection = nil
	_ = b.store.Delete(draftItemsKey)
	_ = b.store.Delete(customerNameKey)
}

func (b *Builder) persist() {
	if payload, err := json.Marshal(b.items); err == nil {
		_ = b.store.Set(draftItemsKey, string(payload))
	}
	_ = b.store.Set(customerNameKey, b.customerName)
}

func (b *Builder) restore() {
	if raw, ok, err := b.store.Get(draftItemsKey); err == nil && ok {
		var items []domain.LineItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			b.items = items
		}
	}
	if name, ok, err := b.store.Get(customerNameKey); err == nil && ok {
		b.customerName = name
	}
}

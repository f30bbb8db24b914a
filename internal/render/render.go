// Package render turns a bill-like structure (the current draft or a
// persisted invoice) into a deterministic tabular document for preview,
// PDF export and printing. Identical inputs always produce identical
// output; the creation date is part of the input, never read from a clock.
package render

import (
	"time"

	"github.com/shopspring/decimal"

	"invoicely/client/internal/domain"
)

// Document is the render input: a customer name, an ordered sequence of
// line items and a creation date. RefID is the invoice id when the source
// is a persisted invoice and empty for an unsaved draft.
type Document struct {
	RefID        string
	CustomerName string
	CreatedAt    time.Time
	Items        []domain.LineItem
	Currency     string
}

// GrandTotal folds the stored line totals.
func (d Document) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Total)
	}
	return total
}

func (d Document) fileName(ext string) string {
	if d.RefID == "" {
		return "invoice" + ext
	}
	return "invoice-" + d.RefID + ext
}

// Renderer builds documents and writes export artifacts under exportDir.
type Renderer struct {
	exportDir string
	currency  string
}

func NewRenderer(exportDir string, currency string) *Renderer {
	if currency == "" {
		currency = "₹"
	}
	return &Renderer{exportDir: exportDir, currency: currency}
}

// DraftDocument builds a document from the current draft. The caller
// supplies the date so previews and exports of the same draft agree.
func (r *Renderer) DraftDocument(bill domain.DraftBill, at time.Time) Document {
	return Document{
		CustomerName: bill.CustomerName,
		CreatedAt:    at,
		Items:        append([]domain.LineItem(nil), bill.Items...),
		Currency:     r.currency,
	}
}

func (r *Renderer) InvoiceDocument(inv domain.Invoice) Document {
	return Document{
		RefID:        inv.ID,
		CustomerName: inv.CustomerName,
		CreatedAt:    inv.CreatedAt,
		Items:        append([]domain.LineItem(nil), inv.Items...),
		Currency:     r.currency,
	}
}

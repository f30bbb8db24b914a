package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote API speaks plain JSON numbers for prices, quantities and
	// totals, not quoted decimal strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Unit is a unit of measure for a catalog item. The set is fixed: weight,
// count and volume units plus the packaging units used by kirana suppliers.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitGram   Unit = "g"
	UnitPieces Unit = "pcs"
	UnitLiters Unit = "liters"
	UnitMl     Unit = "ml"
	UnitDozen  Unit = "dozen"
	UnitBora   Unit = "बोरा"
	UnitPeti   Unit = "पेटी"
	UnitBundle Unit = "बंडल"
	UnitTina   Unit = "टीना"
)

var Units = []Unit{
	UnitKg, UnitGram, UnitPieces, UnitLiters, UnitMl,
	UnitDozen, UnitBora, UnitPeti, UnitBundle, UnitTina,
}

func ValidUnit(u Unit) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// CatalogItem is a sellable item as stored by the remote API. The id is
// server-assigned and opaque.
type CatalogItem struct {
	ID    string           `json:"_id"`
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
	MRP   *decimal.Decimal `json:"mrp,omitempty"`
	Unit  Unit             `json:"unit"`
}

type ItemCreateRequest struct {
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
	MRP   *decimal.Decimal `json:"mrp"`
	Unit  Unit             `json:"unit"`
}

// ItemUpdateRequest is a partial update. Nil fields are left unchanged
// server-side.
type ItemUpdateRequest struct {
	Price *decimal.Decimal `json:"price,omitempty"`
	MRP   *decimal.Decimal `json:"mrp,omitempty"`
}

// LineItem is a bill entry snapshotted from a catalog item at selection time.
// It holds copies of the item's name, unit and MRP, never a reference, so
// later catalog edits cannot retroactively alter a bill or a stored invoice.
// Total is computed once, when the line is built; it is the source of truth
// afterward.
type LineItem struct {
	Name           string           `json:"name"`
	Unit           Unit             `json:"unit"`
	MRP            *decimal.Decimal `json:"mrp,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Price          decimal.Decimal  `json:"price"`
	IsSpecialPrice bool             `json:"isSpecialPrice"`
	Total          decimal.Decimal  `json:"total"`
}

// NewLineItem snapshots item into a bill line. price is the effective unit
// price (catalog price or operator override) and special records whether an
// override was used.
func NewLineItem(item CatalogItem, quantity decimal.Decimal, price decimal.Decimal, special bool) LineItem {
	var mrp *decimal.Decimal
	if item.MRP != nil {
		v := *item.MRP
		mrp = &v
	}
	return LineItem{
		Name:           item.Name,
		Unit:           item.Unit,
		MRP:            mrp,
		Quantity:       quantity,
		Price:          price,
		IsSpecialPrice: special,
		Total:          price.Mul(quantity),
	}
}

// DraftBill is the in-progress bill. It lives only on the local device until
// it is submitted as an invoice.
type DraftBill struct {
	CustomerName string     `json:"customerName"`
	Items        []LineItem `json:"items"`
}

// Invoice is the server-persisted form of a finished bill. It is immutable
// except for deletion; no update operation exists.
type Invoice struct {
	ID           string     `json:"_id"`
	CustomerName string     `json:"customerName"`
	Items        []LineItem `json:"items"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// GrandTotal folds the stored line totals. The grand total is never stored;
// it is always recomputed at render or view time.
func (inv Invoice) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Total)
	}
	return total
}

type InvoiceCreateRequest struct {
	CustomerName string     `json:"customerName"`
	Items        []LineItem `json:"items"`
}

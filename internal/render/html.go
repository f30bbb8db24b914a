package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// row is one rendered table line. All cell text is precomputed so the
// template stays a pure layout concern.
type row struct {
	No       int
	Name     string
	MRP      string
	Quantity string
	Price    string
	Total    string
}

type documentView struct {
	CustomerName string
	Date         string
	Rows         []row
	GrandTotal   string
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice</title>
<style>
  body { margin: 0; padding: 0; font-family: Arial, sans-serif; background: white; }
  .page { width: 210mm; min-height: 297mm; padding: 10mm; box-sizing: border-box; }
  .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 8mm; }
  .header h1 { font-size: 28px; font-weight: bold; color: #1F2937; margin: 0; }
  .meta { color: #6B7280; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 5mm; }
  thead tr { background-color: #3B82F6; color: white; }
  th { padding: 4mm 3mm; text-align: left; font-weight: 600; }
  td { padding: 3mm 3mm; color: #4B5563; font-size: 12px; border-bottom: 1px solid #E5E7EB; }
  td.name { color: #1F2937; font-weight: 500; }
  .totals { border-top: 2px solid #E5E7EB; padding-top: 5mm; margin-top: 5mm; text-align: right; }
  .totals .label { color: #6B7280; font-size: 14px; margin-bottom: 1mm; }
  .totals .amount { font-size: 24px; font-weight: bold; color: #047857; margin: 0; }
  .footer { margin-top: 5mm; text-align: center; color: #6B7280; font-size: 12px; }
  @media print {
    body { margin: 0; padding: 0; }
    @page { size: A4; margin: 0; }
  }
</style>
</head>
<body>
<div class="page">
  <div class="header">
    <div>
      <h1>&#129534; Invoice</h1>
      <p class="meta">Customer: {{.CustomerName}}</p>
    </div>
    <div class="meta">Date: {{.Date}}</div>
  </div>
  <table>
    <thead>
      <tr>
        <th style="width:8%">S.No</th>
        <th style="width:30%">Item Name</th>
        <th style="width:15%">MRP</th>
        <th style="width:15%">Quantity</th>
        <th style="width:15%">Price/Unit</th>
        <th style="width:17%">Total</th>
      </tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      <tr>
        <td>{{.No}}</td>
        <td class="name">{{.Name}}</td>
        <td>{{.MRP}}</td>
        <td>{{.Quantity}}</td>
        <td>{{.Price}}</td>
        <td>{{.Total}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <div class="totals">
    <p class="label">Total Amount:</p>
    <p class="amount">{{.GrandTotal}}</p>
  </div>
  <div class="footer">
    <p>Thank you for your business!</p>
  </div>
</div>
</body>
</html>
`

var documentTmpl = template.Must(template.New("document").Parse(documentTemplate))

// RenderHTML produces the standalone A4 document for doc. The same markup
// backs on-screen preview, PDF conversion and printing.
func RenderHTML(doc Document) (string, error) {
	view := documentView{
		CustomerName: doc.CustomerName,
		Date:         doc.CreatedAt.Format("02/01/2006"),
		GrandTotal:   doc.Currency + doc.GrandTotal().StringFixed(2),
	}
	for i, item := range doc.Items {
		mrp := "-"
		if item.MRP != nil {
			mrp = doc.Currency + item.MRP.String()
		}
		price := doc.Currency + item.Price.String()
		if item.IsSpecialPrice {
			price += " (Special)"
		}
		view.Rows = append(view.Rows, row{
			No:       i + 1,
			Name:     item.Name,
			MRP:      mrp,
			Quantity: fmt.Sprintf("%s %s", item.Quantity.String(), item.Unit),
			Price:    price,
			Total:    doc.Currency + item.Total.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

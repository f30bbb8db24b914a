package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"invoicely/client/internal/domain"
	"invoicely/client/internal/render"
)

func printDocumentCmd(renderer *render.Renderer, doc render.Document) tea.Cmd {
	return func() tea.Msg {
		path, err := renderer.WritePrintDocument(doc)
		if err != nil {
			return errMsg{err}
		}
		if err := render.OpenPrintDialog(path); err != nil {
			return errMsg{err}
		}
		return printedMsg{path}
	}
}

func (m Model) updateAllBills(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceDeletedMsg:
		m.loading = false
		m.errMsg = ""
		kept := m.invoices[:0]
		for _, inv := range m.invoices {
			if inv.ID != msg.id {
				kept = append(kept, inv)
			}
		}
		m.invoices = kept
		if m.cursor >= len(m.invoices) && m.cursor > 0 {
			m.cursor--
		}
		m.toast = "✅ Invoice deleted successfully"
		return m, showToast()
	case exportedMsg:
		m.loading = false
		m.toast = "📥 PDF written to " + msg.path
		return m, showToast()
	case printedMsg:
		m.loading = false
		m.toast = "🖨 Print document opened: " + msg.path
		return m, showToast()
	case tea.KeyMsg:
		return m.handleBillsKey(msg)
	}
	return m, nil
}

func (m Model) handleBillsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingID != "" {
		switch key.String() {
		case "y", "Y":
			id := m.confirmingID
			m.confirmingID = ""
			m.loading = true
			return m, func() tea.Msg {
				if err := m.svc.DeleteInvoice(context.Background(), id); err != nil {
					return errMsg{fmt.Errorf("failed to delete invoice: %w", err)}
				}
				return invoiceDeletedMsg{id}
			}
		default:
			m.confirmingID = ""
			return m, nil
		}
	}

	switch key.String() {
	case "esc", "q":
		return m.backHome()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadInvoices()
	case "enter", "v":
		if len(m.invoices) > 0 {
			inv := m.invoices[m.cursor]
			m.selected = &inv
			m.screen = screenInvoiceDetail
		}
	case "e":
		if len(m.invoices) > 0 {
			doc := m.renderer.InvoiceDocument(m.invoices[m.cursor])
			return m, func() tea.Msg {
				path, err := m.renderer.WritePDF(doc)
				if err != nil {
					return errMsg{err}
				}
				return exportedMsg{path}
			}
		}
	case "p":
		if len(m.invoices) > 0 {
			doc := m.renderer.InvoiceDocument(m.invoices[m.cursor])
			return m, printDocumentCmd(m.renderer, doc)
		}
	case "d":
		if len(m.invoices) > 0 {
			m.confirmingID = m.invoices[m.cursor].ID
		}
	}
	return m, nil
}

func (m Model) viewAllBills() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" All Bills ") + "\n\n")

	if m.loading {
		b.WriteString("  Loading...\n")
		return m.chrome(b.String())
	}
	if len(m.invoices) == 0 {
		b.WriteString("  No bills found\n")
		b.WriteString("\n" + helpStyle.Render("r: refresh  esc: back"))
		return m.chrome(b.String())
	}

	if m.confirmingID != "" {
		b.WriteString(boxStyle.Render("Are you sure you want to delete this invoice?\n\ny: yes, delete   any other key: no") + "\n")
		return m.chrome(b.String())
	}

	// Newest first; the bill number counts down so the oldest bill is #1.
	for i, inv := range m.invoices {
		customer := inv.CustomerName
		if customer == "" {
			customer = "No Name"
		}
		line := fmt.Sprintf("Bill #%-4d %s  %-20s %2d items  %s",
			len(m.invoices)-i,
			inv.CreatedAt.Format("02/01/2006 15:04"),
			customer,
			len(inv.Items),
			m.currency+inv.GrandTotal().StringFixed(2),
		)
		if i == m.cursor {
			b.WriteString("> " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("enter: view  e: download pdf  p: print  d: delete  r: refresh  esc: back"))
	return m.chrome(b.String())
}

func (m Model) updateInvoiceDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		m.toast = "📥 PDF written to " + msg.path
		return m, showToast()
	case printedMsg:
		m.toast = "🖨 Print document opened: " + msg.path
		return m, showToast()
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.selected = nil
			m.screen = screenAllBills
			return m, nil
		case "e":
			if m.selected != nil {
				doc := m.renderer.InvoiceDocument(*m.selected)
				return m, func() tea.Msg {
					path, err := m.renderer.WritePDF(doc)
					if err != nil {
						return errMsg{err}
					}
					return exportedMsg{path}
				}
			}
		case "p":
			if m.selected != nil {
				doc := m.renderer.InvoiceDocument(*m.selected)
				return m, printDocumentCmd(m.renderer, doc)
			}
		}
	}
	return m, nil
}

func (m Model) viewInvoiceDetail() string {
	if m.selected == nil {
		return m.chrome("No invoice selected")
	}
	inv := *m.selected

	var b strings.Builder
	b.WriteString(titleStyle.Render(" Invoice Details ") + "\n\n")

	customer := inv.CustomerName
	if customer == "" {
		customer = "No Name"
	}
	b.WriteString("  Customer: " + customer + "\n")
	b.WriteString("  Date: " + inv.CreatedAt.Format("02/01/2006") + "\n\n")

	header := fmt.Sprintf("  %-22s %-10s %-12s %-16s %-12s", "Item", "MRP", "Qty", "Price", "Total")
	b.WriteString(headerRowStyle.Render(header) + "\n")
	for _, item := range inv.Items {
		b.WriteString("  " + formatLineItem(item, m.currency) + "\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %s\n", successStyle.Render(m.currency+inv.GrandTotal().StringFixed(2))))

	b.WriteString("\n" + helpStyle.Render("e: download pdf  p: print  esc: back"))
	return m.chrome(b.String())
}

func formatLineItem(item domain.LineItem, currency string) string {
	mrp := "-"
	if item.MRP != nil {
		mrp = currency + item.MRP.String()
	}
	price := currency + item.Price.String()
	if item.IsSpecialPrice {
		price += specialStyle.Render(" (Special)")
	}
	return fmt.Sprintf("%-22s %-10s %-12s %-16s %-12s",
		item.Name,
		mrp,
		fmt.Sprintf("%s %s", item.Quantity.String(), item.Unit),
		price,
		currency+item.Total.StringFixed(2),
	)
}

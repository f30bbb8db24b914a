package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"invoicely/client/internal/billing"
	"invoicely/client/internal/domain"
)

// parseAmount is the strict boundary between textual form input and the
// typed bill model: anything that is not a non-negative decimal is rejected
// before it can reach the computation layer.
func parseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount")
	}
	return value, nil
}

func (m *Model) blurBillInputs() {
	m.customerInput.Blur()
	m.searchInput.Blur()
	m.qtyInput.Blur()
	m.priceInput.Blur()
}

func (m *Model) focusBillInput(zone int) tea.Cmd {
	m.blurBillInputs()
	m.focus = zone
	switch zone {
	case focusCustomer:
		return m.customerInput.Focus()
	case focusSearch:
		return m.searchInput.Focus()
	case focusQuantity:
		return m.qtyInput.Focus()
	case focusPrice:
		return m.priceInput.Focus()
	}
	return nil
}

// billFocusOrder returns the reachable focus zones given the current state:
// quantity and price only exist while an item is selected, the cart only
// once it has lines.
func (m Model) billFocusOrder() []int {
	order := []int{focusCustomer, focusSearch}
	if m.builder.Selection() != nil {
		order = append(order, focusQuantity, focusPrice)
	}
	if len(m.builder.Items()) > 0 {
		order = append(order, focusCart)
	}
	return order
}

func (m *Model) cycleBillFocus(backward bool) tea.Cmd {
	order := m.billFocusOrder()
	idx := 0
	for i, zone := range order {
		if zone == m.focus {
			idx = i
			break
		}
	}
	if backward {
		idx = (idx - 1 + len(order)) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	return m.focusBillInput(order[idx])
}

func (m Model) updateGenerateBill(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceSavedMsg:
		m.loading = false
		m.errMsg = ""
		// The draft is intentionally left in place after a successful save;
		// the operator starts a fresh bill explicitly with ctrl+n.
		m.toast = "✅ Invoice saved!"
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
		return m.handleBillKey(msg)
	}
	return m.updateBillInputs(msg)
}

func (m Model) handleBillKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		if m.builder.Selection() != nil {
			m.builder.ClearSelection()
			m.qtyInput.SetValue("")
			m.priceInput.SetValue("")
			m.searchInput.SetValue("")
			m.results = nil
			return m, m.focusBillInput(focusSearch)
		}
		return m.backHome()
	case "tab":
		return m, m.cycleBillFocus(false)
	case "shift+tab":
		return m, m.cycleBillFocus(true)
	case "ctrl+s":
		return m.saveDraftInvoice()
	case "ctrl+e":
		return m.exportDraft()
	case "ctrl+p":
		return m.printDraft()
	case "ctrl+n":
		m.builder.Clear()
		m.customerInput.SetValue("")
		m.searchInput.SetValue("")
		m.qtyInput.SetValue("")
		m.priceInput.SetValue("")
		m.results = nil
		m.cartCursor = 0
		m.toast = "✅ New invoice started!"
		return m, tea.Batch(showToast(), m.focusBillInput(focusCustomer))
	case "up":
		if m.focus == focusSearch && m.resultCursor > 0 {
			m.resultCursor--
			return m, nil
		}
		if m.focus == focusCart && m.cartCursor > 0 {
			m.cartCursor--
			return m, nil
		}
	case "down":
		if m.focus == focusSearch && m.resultCursor < len(m.results)-1 {
			m.resultCursor++
			return m, nil
		}
		if m.focus == focusCart && m.cartCursor < len(m.builder.Items())-1 {
			m.cartCursor++
			return m, nil
		}
	case "enter":
		switch m.focus {
		case focusCustomer:
			return m, m.focusBillInput(focusSearch)
		case focusSearch:
			if m.builder.Selection() == nil && len(m.results) > 0 {
				item := m.results[m.resultCursor]
				m.builder.SelectItem(item)
				m.searchInput.SetValue(item.Name)
				m.results = nil
				m.resultCursor = 0
				return m, m.focusBillInput(focusQuantity)
			}
		case focusQuantity, focusPrice:
			return m.addToBill()
		}
	case "x", "delete":
		if m.focus == focusCart {
			return m.removeCartLine()
		}
	}
	return m.updateBillInputs(key)
}

func (m Model) updateBillInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.customerInput, cmd = m.customerInput.Update(msg)
	cmds = append(cmds, cmd)
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)
	m.qtyInput, cmd = m.qtyInput.Update(msg)
	cmds = append(cmds, cmd)
	m.priceInput, cmd = m.priceInput.Update(msg)
	cmds = append(cmds, cmd)

	// Mirror the customer name into the draft on every edit so it survives
	// a restart like the line items do.
	if m.customerInput.Value() != m.builder.CustomerName() {
		m.builder.SetCustomerName(m.customerInput.Value())
	}

	if m.builder.Selection() == nil {
		m.results = billing.SearchItems(m.catalog, m.searchInput.Value())
		if m.resultCursor >= len(m.results) {
			m.resultCursor = 0
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) addToBill() (tea.Model, tea.Cmd) {
	qty, err := parseAmount(m.qtyInput.Value())
	if err != nil {
		m.toast = "❌ Please enter a valid quantity"
		return m, showToast()
	}

	var override *decimal.Decimal
	if strings.TrimSpace(m.priceInput.Value()) != "" {
		price, err := parseAmount(m.priceInput.Value())
		if err != nil {
			m.toast = "❌ Please enter a valid special price"
			return m, showToast()
		}
		override = &price
	}

	if _, err := m.builder.AddLineItem(qty, override); err != nil {
		switch err {
		case billing.ErrNoSelection:
			m.toast = "❌ Please select an item first"
		case billing.ErrInvalidQuantity:
			m.toast = "❌ Please enter a valid quantity"
		default:
			m.toast = "❌ " + err.Error()
		}
		return m, showToast()
	}

	m.searchInput.SetValue("")
	m.qtyInput.SetValue("")
	m.priceInput.SetValue("")
	m.results = nil
	m.toast = "✅ Item added to bill!"
	return m, tea.Batch(showToast(), m.focusBillInput(focusSearch))
}

func (m Model) removeCartLine() (tea.Model, tea.Cmd) {
	if err := m.builder.RemoveLineItem(m.cartCursor); err != nil {
		m.toast = "❌ " + err.Error()
		return m, showToast()
	}
	if m.cartCursor >= len(m.builder.Items()) && m.cartCursor > 0 {
		m.cartCursor--
	}
	m.toast = "✅ Item removed from bill!"
	if len(m.builder.Items()) == 0 {
		return m, tea.Batch(showToast(), m.focusBillInput(focusSearch))
	}
	return m, showToast()
}

func (m Model) saveDraftInvoice() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.builder.CustomerName()) == "" {
		m.toast = "❌ Please enter customer name"
		return m, showToast()
	}
	items := m.builder.Items()
	if len(items) == 0 {
		m.toast = "❌ Bill has no items"
		return m, showToast()
	}

	name := m.builder.CustomerName()
	m.loading = true
	return m, func() tea.Msg {
		inv, err := m.svc.SubmitInvoice(context.Background(), name, items)
		if err != nil {
			return errMsg{fmt.Errorf("failed to create invoice: %w", err)}
		}
		return invoiceSavedMsg{inv}
	}
}

func (m Model) exportDraft() (tea.Model, tea.Cmd) {
	if len(m.builder.Items()) == 0 {
		m.toast = "❌ Bill has no items"
		return m, showToast()
	}
	doc := m.renderer.DraftDocument(m.builder.Draft(), time.Now())
	return m, func() tea.Msg {
		path, err := m.renderer.WritePDF(doc)
		if err != nil {
			return errMsg{err}
		}
		return exportedMsg{path}
	}
}

func (m Model) printDraft() (tea.Model, tea.Cmd) {
	if len(m.builder.Items()) == 0 {
		m.toast = "❌ Bill has no items"
		return m, showToast()
	}
	doc := m.renderer.DraftDocument(m.builder.Draft(), time.Now())
	return m, printDocumentCmd(m.renderer, doc)
}

func (m Model) viewGenerateBill() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Generate Bill ") + "\n\n")

	if m.loading {
		b.WriteString("  Loading items...\n")
		return m.chrome(b.String())
	}

	b.WriteString("  Customer:\n  " + m.customerInput.View() + "\n\n")
	b.WriteString("  Item:\n  " + m.searchInput.View() + "\n")

	if sel := m.builder.Selection(); sel != nil {
		info := fmt.Sprintf("%s — %s%s per %s", sel.Name, m.currency, sel.Price.String(), sel.Unit)
		b.WriteString("\n" + boxStyle.Render(
			selectedStyle.Render(info)+"\n\n"+
				"Quantity:       "+m.qtyInput.View()+"\n"+
				"Special Price:  "+m.priceInput.View(),
		) + "\n")
	} else if len(m.results) > 0 {
		b.WriteString("\n")
		for i, item := range m.results {
			line := fmt.Sprintf("%s  %s%s per %s", item.Name, m.currency, item.Price.String(), item.Unit)
			if i == m.resultCursor {
				b.WriteString("  > " + selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString("    " + line + "\n")
			}
		}
	}

	if items := m.builder.Items(); len(items) > 0 {
		b.WriteString("\n" + m.viewCart(items))
	}

	b.WriteString("\n" + helpStyle.Render(
		"tab: next field  enter: select/add  x: remove line\n"+
			"ctrl+s: save invoice  ctrl+e: download pdf  ctrl+p: print  ctrl+n: new invoice  esc: back"))
	return m.chrome(b.String())
}

func (m Model) viewCart(items []domain.LineItem) string {
	var b strings.Builder
	b.WriteString(selectedStyle.Render("  🛒 Cart") + "\n")
	header := fmt.Sprintf("  %-22s %-10s %-12s %-16s %-12s", "Item", "MRP", "Quantity", "Price", "Total")
	b.WriteString(headerRowStyle.Render(header) + "\n")

	for i, item := range items {
		mrp := "-"
		if item.MRP != nil {
			mrp = m.currency + item.MRP.String()
		}
		price := m.currency + item.Price.String()
		if item.IsSpecialPrice {
			price += specialStyle.Render(" (Special)")
		}
		row := fmt.Sprintf("%-22s %-10s %-12s %-16s %-12s",
			item.Name,
			mrp,
			fmt.Sprintf("%s %s", item.Quantity.String(), item.Unit),
			price,
			m.currency+item.Total.StringFixed(2),
		)
		if m.focus == focusCart && i == m.cartCursor {
			b.WriteString("> " + selectedStyle.Render(row) + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}

	b.WriteString(fmt.Sprintf("\n  Total Amount: %s\n",
		successStyle.Render(m.currency+m.builder.TotalAmount().StringFixed(2))))
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"invoicely/client/internal/domain"
)

func (m Model) updateAllItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemUpdatedMsg:
		m.loading = false
		m.errMsg = ""
		// Mirror the server's authoritative copy into the held list.
		for i := range m.items {
			if m.items[i].ID == msg.item.ID {
				m.items[i] = *msg.item
			}
		}
		m.editingItem = false
		m.toast = "✅ Item updated"
		return m, showToast()
	case itemDeletedMsg:
		m.loading = false
		m.errMsg = ""
		// Drop the deleted entry locally; no full re-fetch.
		kept := m.items[:0]
		for _, item := range m.items {
			if item.ID != msg.id {
				kept = append(kept, item)
			}
		}
		m.items = kept
		if m.cursor >= len(m.items) && m.cursor > 0 {
			m.cursor--
		}
		m.toast = "✅ Item deleted"
		return m, showToast()
	case tea.KeyMsg:
		return m.handleItemsKey(msg)
	}
	return m, nil
}

func (m Model) handleItemsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingID != "" {
		switch key.String() {
		case "y", "Y":
			id := m.confirmingID
			m.confirmingID = ""
			m.loading = true
			return m, func() tea.Msg {
				if err := m.svc.DeleteItem(context.Background(), id); err != nil {
					return errMsg{fmt.Errorf("failed to delete item: %w", err)}
				}
				return itemDeletedMsg{id}
			}
		default:
			m.confirmingID = ""
			return m, nil
		}
	}

	if m.editingItem {
		return m.handleItemEditKey(key)
	}

	switch key.String() {
	case "esc", "q":
		return m.backHome()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadItems()
	case "e", "enter":
		if len(m.items) == 0 {
			return m, nil
		}
		m.editingItem = true
		m.priceEdit = textinput.New()
		m.priceEdit.Placeholder = "New Price"
		m.priceEdit.CharLimit = 12
		m.mrpEdit = textinput.New()
		m.mrpEdit.Placeholder = "New MRP"
		m.mrpEdit.CharLimit = 12
		return m, m.priceEdit.Focus()
	case "d":
		if len(m.items) > 0 {
			m.confirmingID = m.items[m.cursor].ID
		}
	}
	return m, nil
}

func (m Model) handleItemEditKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.editingItem = false
		return m, nil
	case "tab", "shift+tab", "up", "down":
		if m.priceEdit.Focused() {
			m.priceEdit.Blur()
			return m, m.mrpEdit.Focus()
		}
		m.mrpEdit.Blur()
		return m, m.priceEdit.Focus()
	case "enter":
		return m.submitItemEdit()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.priceEdit, cmd = m.priceEdit.Update(key)
	cmds = append(cmds, cmd)
	m.mrpEdit, cmd = m.mrpEdit.Update(key)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submitItemEdit sends a partial update: only the fields the operator filled
// in are included, the rest stay unchanged server-side.
func (m Model) submitItemEdit() (tea.Model, tea.Cmd) {
	var req domain.ItemUpdateRequest
	if raw := strings.TrimSpace(m.priceEdit.Value()); raw != "" {
		price, err := parseAmount(raw)
		if err != nil {
			m.toast = "❌ Please enter a valid price"
			return m, showToast()
		}
		req.Price = &price
	}
	if raw := strings.TrimSpace(m.mrpEdit.Value()); raw != "" {
		mrp, err := parseAmount(raw)
		if err != nil {
			m.toast = "❌ Please enter a valid MRP"
			return m, showToast()
		}
		req.MRP = &mrp
	}
	if req.Price == nil && req.MRP == nil {
		m.toast = "❌ Enter a new price or MRP"
		return m, showToast()
	}

	id := m.items[m.cursor].ID
	m.loading = true
	return m, func() tea.Msg {
		updated, err := m.svc.UpdateItem(context.Background(), id, req)
		if err != nil {
			return errMsg{fmt.Errorf("failed to update item: %w", err)}
		}
		return itemUpdatedMsg{updated}
	}
}

func (m Model) viewAllItems() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" All Items ") + "\n\n")

	if m.loading {
		b.WriteString("  Loading items...\n")
		return m.chrome(b.String())
	}
	if len(m.items) == 0 {
		b.WriteString("  No items available.\n")
		b.WriteString("\n" + helpStyle.Render("r: refresh  esc: back"))
		return m.chrome(b.String())
	}

	if m.confirmingID != "" {
		b.WriteString(boxStyle.Render("Are you sure you want to delete this item?\n\ny: yes, delete   any other key: no") + "\n")
		return m.chrome(b.String())
	}

	for i, item := range m.items {
		mrp := ""
		if item.MRP != nil {
			mrp = fmt.Sprintf("  (MRP: %s%s)", m.currency, item.MRP.String())
		}
		line := fmt.Sprintf("%-24s %s%s / %s%s", item.Name, m.currency, item.Price.String(), item.Unit, mrp)
		if i == m.cursor {
			b.WriteString("> " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.editingItem {
		b.WriteString("\n" + boxStyle.Render(
			"Update "+m.items[m.cursor].Name+"\n\n"+
				"Price:  "+m.priceEdit.View()+"\n"+
				"MRP:    "+m.mrpEdit.View()+"\n\n"+
				helpStyle.Render("enter: save  tab: switch field  esc: cancel"),
		) + "\n")
	} else {
		b.WriteString("\n" + helpStyle.Render("e: edit price/mrp  d: delete  r: refresh  esc: back"))
	}
	return m.chrome(b.String())
}

// Add-item form.

const (
	addFieldName = iota
	addFieldMRP
	addFieldPrice
	addFieldUnit
)

func (m *Model) initAddItemForm() {
	m.addInputs = make([]textinput.Model, 3)

	m.addInputs[addFieldName] = textinput.New()
	m.addInputs[addFieldName].Placeholder = "Item Name (e.g., Rice, Oil)"
	m.addInputs[addFieldName].CharLimit = 64

	m.addInputs[addFieldMRP] = textinput.New()
	m.addInputs[addFieldMRP].Placeholder = "MRP (optional)"
	m.addInputs[addFieldMRP].CharLimit = 12

	m.addInputs[addFieldPrice] = textinput.New()
	m.addInputs[addFieldPrice].Placeholder = "Price"
	m.addInputs[addFieldPrice].CharLimit = 12

	m.addFocus = addFieldName
	m.unitIndex = 0
}

func (m Model) updateAddItem(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemCreatedMsg:
		m.loading = false
		m.errMsg = ""
		m.initAddItemForm()
		m.toast = fmt.Sprintf("✅ Added %s", msg.item.Name)
		return m, tea.Batch(showToast(), m.addInputs[addFieldName].Focus())
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.backHome()
		case "tab", "down":
			return m, m.setAddFocus((m.addFocus + 1) % 4)
		case "shift+tab", "up":
			return m, m.setAddFocus((m.addFocus + 3) % 4)
		case "left":
			if m.addFocus == addFieldUnit {
				m.unitIndex = (m.unitIndex + len(domain.Units) - 1) % len(domain.Units)
				return m, nil
			}
		case "right":
			if m.addFocus == addFieldUnit {
				m.unitIndex = (m.unitIndex + 1) % len(domain.Units)
				return m, nil
			}
		case "enter":
			return m.submitAddItem()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.addInputs {
		m.addInputs[i], cmd = m.addInputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setAddFocus(field int) tea.Cmd {
	m.addFocus = field
	for i := range m.addInputs {
		m.addInputs[i].Blur()
	}
	if field < len(m.addInputs) {
		return m.addInputs[field].Focus()
	}
	return nil
}

func (m Model) submitAddItem() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.addInputs[addFieldName].Value())
	if name == "" || strings.TrimSpace(m.addInputs[addFieldPrice].Value()) == "" {
		m.toast = "❌ Please enter item name, price, and select unit"
		return m, showToast()
	}
	price, err := parseAmount(m.addInputs[addFieldPrice].Value())
	if err != nil {
		m.toast = "❌ Please enter a valid price"
		return m, showToast()
	}

	var mrp *decimal.Decimal
	if raw := strings.TrimSpace(m.addInputs[addFieldMRP].Value()); raw != "" {
		value, err := parseAmount(raw)
		if err != nil {
			m.toast = "❌ Please enter a valid MRP"
			return m, showToast()
		}
		mrp = &value
	}

	req := domain.ItemCreateRequest{
		Name:  name,
		Price: price,
		MRP:   mrp,
		Unit:  domain.Units[m.unitIndex],
	}
	m.loading = true
	return m, func() tea.Msg {
		created, err := m.svc.CreateItem(context.Background(), req)
		if err != nil {
			return errMsg{fmt.Errorf("failed to add item: %w", err)}
		}
		return itemCreatedMsg{created}
	}
}

func (m Model) viewAddItem() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Add Kirana Item ") + "\n\n")

	labels := []string{"Name:", "MRP:", "Price:"}
	for i, input := range m.addInputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", labels[i], input.View()))
	}

	unit := string(domain.Units[m.unitIndex])
	if m.addFocus == addFieldUnit {
		unit = selectedStyle.Render("< " + unit + " >")
	}
	b.WriteString("  Unit:\n  " + unit + "\n")

	b.WriteString("\n" + helpStyle.Render("tab: next field  left/right: change unit  enter: add  esc: back"))
	return m.chrome(b.String())
}

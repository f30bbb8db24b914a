// Package tui is the interactive billing surface: a terminal UI over the
// billing service, the draft builder and the document renderer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"invoicely/client/internal/billing"
	"invoicely/client/internal/domain"
	"invoicely/client/internal/render"
	"invoicely/client/internal/service"
)

type screen int

const (
	screenHome screen = iota
	screenGenerateBill
	screenAllItems
	screenAddItem
	screenAllBills
	screenInvoiceDetail
)

// Focus zones inside the generate-bill screen.
const (
	focusCustomer = iota
	focusSearch
	focusQuantity
	focusPrice
	focusCart
)

type Model struct {
	svc      *service.Service
	builder  *billing.Builder
	renderer *render.Renderer
	currency string

	screen  screen
	cursor  int
	loading bool
	toast   string
	errMsg  string

	// generate bill
	catalog       []domain.CatalogItem
	results       []domain.CatalogItem
	resultCursor  int
	customerInput textinput.Model
	searchInput   textinput.Model
	qtyInput      textinput.Model
	priceInput    textinput.Model
	focus         int
	cartCursor    int

	// item management
	items        []domain.CatalogItem
	editingItem  bool
	priceEdit    textinput.Model
	mrpEdit      textinput.Model
	confirmingID string

	// add item form
	addInputs []textinput.Model
	addFocus  int
	unitIndex int

	// invoices
	invoices []domain.Invoice
	selected *domain.Invoice
}

func New(svc *service.Service, builder *billing.Builder, renderer *render.Renderer, currency string) Model {
	customer := textinput.New()
	customer.Placeholder = "Customer Name"
	customer.SetValue(builder.CustomerName())
	customer.CharLimit = 64

	search := textinput.New()
	search.Placeholder = "Search items..."

	qty := textinput.New()
	qty.Placeholder = "Quantity"
	qty.CharLimit = 12

	price := textinput.New()
	price.Placeholder = "Special Price (optional)"
	price.CharLimit = 12

	return Model{
		svc:           svc,
		builder:       builder,
		renderer:      renderer,
		currency:      currency,
		screen:        screenHome,
		customerInput: customer,
		searchInput:   search,
		qtyInput:      qty,
		priceInput:    price,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages.

type catalogLoadedMsg struct{ items []domain.CatalogItem }
type itemsLoadedMsg struct{ items []domain.CatalogItem }
type invoicesLoadedMsg struct{ invoices []domain.Invoice }
type invoiceSavedMsg struct{ invoice *domain.Invoice }
type itemCreatedMsg struct{ item *domain.CatalogItem }
type itemUpdatedMsg struct{ item *domain.CatalogItem }
type itemDeletedMsg struct{ id string }
type invoiceDeletedMsg struct{ id string }
type exportedMsg struct{ path string }
type printedMsg struct{ path string }
type errMsg struct{ err error }
type clearToastMsg struct{}

func showToast() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// Commands. Each runs off the event loop and reports back as a message; the
// loop itself never blocks on the remote API.

func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		items, err := m.svc.ListItems(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return catalogLoadedMsg{items}
	}
}

func (m Model) loadItems() tea.Cmd {
	return func() tea.Msg {
		items, err := m.svc.ListItems(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return itemsLoadedMsg{items}
	}
}

func (m Model) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.svc.ListInvoices(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return invoicesLoadedMsg{invoices}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearToastMsg:
		m.toast = ""
		return m, nil
	case errMsg:
		m.loading = false
		m.errMsg = msg.err.Error()
		return m, nil
	case catalogLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.catalog = msg.items
		return m, nil
	case itemsLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil
	case invoicesLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.invoices = msg.invoices
		if m.cursor >= len(m.invoices) {
			m.cursor = 0
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenHome:
		return m.updateHome(msg)
	case screenGenerateBill:
		return m.updateGenerateBill(msg)
	case screenAllItems:
		return m.updateAllItems(msg)
	case screenAddItem:
		return m.updateAddItem(msg)
	case screenAllBills:
		return m.updateAllBills(msg)
	case screenInvoiceDetail:
		return m.updateInvoiceDetail(msg)
	}
	return m, nil
}

var homeEntries = []struct {
	label string
	dest  screen
}{
	{"Generate Bill", screenGenerateBill},
	{"All Bills", screenAllBills},
	{"All Items", screenAllItems},
	{"Add Item", screenAddItem},
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(homeEntries)-1 {
			m.cursor++
		}
	case "enter":
		dest := homeEntries[m.cursor].dest
		return m.enterScreen(dest)
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// enterScreen switches screens and kicks off whatever load the destination
// needs.
func (m Model) enterScreen(dest screen) (tea.Model, tea.Cmd) {
	m.screen = dest
	m.cursor = 0
	m.errMsg = ""
	m.confirmingID = ""
	m.editingItem = false
	switch dest {
	case screenGenerateBill:
		m.loading = true
		m.focus = focusCustomer
		m.customerInput.SetValue(m.builder.CustomerName())
		cmds := []tea.Cmd{m.loadCatalog(), m.customerInput.Focus()}
		return m, tea.Batch(cmds...)
	case screenAllItems:
		m.loading = true
		return m, m.loadItems()
	case screenAllBills:
		m.loading = true
		return m, m.loadInvoices()
	case screenAddItem:
		m.initAddItemForm()
		return m, m.addInputs[0].Focus()
	}
	return m, nil
}

func (m Model) backHome() (tea.Model, tea.Cmd) {
	m.screen = screenHome
	m.cursor = 0
	m.errMsg = ""
	m.blurBillInputs()
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenHome:
		return m.viewHome()
	case screenGenerateBill:
		return m.viewGenerateBill()
	case screenAllItems:
		return m.viewAllItems()
	case screenAddItem:
		return m.viewAddItem()
	case screenAllBills:
		return m.viewAllBills()
	case screenInvoiceDetail:
		return m.viewInvoiceDetail()
	}
	return ""
}

func (m Model) viewHome() string {
	s := titleStyle.Render(" Invoicely ") + "\n\n"
	for i, entry := range homeEntries {
		prefix := "  "
		label := entry.label
		if i == m.cursor {
			prefix = "> "
			label = selectedStyle.Render(label)
		}
		s += prefix + label + "\n"
	}
	s += "\n" + helpStyle.Render("up/down: move  enter: open  q: quit")
	return m.chrome(s)
}

// chrome wraps screen content with the shared toast and error lines.
func (m Model) chrome(content string) string {
	out := "\n" + content + "\n"
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("✗ "+m.errMsg) + "\n"
	}
	if m.toast != "" {
		out += "\n" + successStyle.Render(m.toast) + "\n"
	}
	return out
}

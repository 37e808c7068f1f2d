package tui

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/catalog"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/store"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/tui/components"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/tui/panels"
)

// Flash is the one-line status message under the header.
type Flash struct {
	Text     string
	Category FlashCategory
}

// Options configures a Model.
type Options struct {
	Service  SaleService
	Products Products
	Session  store.Reader // may be nil

	Operator    sale.Operator
	StoreName   string
	AccentColor string

	// Location is the starting location; nil means /pos.
	Location *url.URL

	// Context bounds service calls; nil means context.Background().
	Context context.Context
	Log     zerolog.Logger
}

// Model is the root bubbletea model for the POS screen.
type Model struct {
	svc       SaleService
	catalog   Products
	session   store.Reader
	op        sale.Operator
	storeName string
	ctx       context.Context
	log       zerolog.Logger
	keys      keyMap
	theme     Theme
	help      help.Model
	doc       *shortcut.Document
	slot      *viewSlot
	unbind    func()
	summary   store.SessionSummary

	// Screen state
	location *url.URL
	current  *sale.Sale // sale named by location, nil when absent or unknown
	flash    Flash
	focus    FocusTarget

	// Widgets
	products panels.ProductsPanel
	qty      textinput.Model
	method   components.Choice
	amount   textinput.Model
	reason   textinput.Model
	items    table.Model
	activity components.Feed

	// Layout
	layout Layout
	width  int
	height int
	now    time.Time
}

// New creates the POS screen and binds the shortcut dispatcher to it.
// Call Close when the program exits.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	loc := opts.Location
	if loc == nil {
		loc = homeLocation()
	}
	layout := Calculate(80, 24)

	doc := &shortcut.Document{}
	slot := &viewSlot{}
	d := shortcut.NewDispatcher(opts.Log)

	m := Model{
		svc:       opts.Service,
		catalog:   opts.Products,
		session:   opts.Session,
		op:        opts.Operator,
		storeName: opts.StoreName,
		ctx:       ctx,
		log:       opts.Log,
		keys:      defaultKeyMap(),
		theme:     NewTheme(opts.AccentColor),
		help:      help.New(),
		doc:       doc,
		slot:      slot,
		unbind:    d.Bind(doc, slot.resolve),
		qty:       newInput("1", 12),
		method:    components.NewChoice(methodLabels()),
		amount:    newInput("total", 14),
		reason:    newInput(sale.DefaultCancelReason, 200),
		items:     newItemsTable(),
		activity:  components.NewFeed(40, 4),
		layout:    layout,
		width:     80,
		height:    24,
		now:       time.Now(),
	}
	productsW, productsH := innerDims(layout.Products)
	m.products = panels.NewProductsPanel(m.choices(), productsW, productsH)
	m = m.resize(80, 24)
	return m.navigate(loc)
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

func newItemsTable() table.Model {
	t := table.New(
		table.WithColumns(panels.ItemColumns(60)),
		table.WithFocused(false),
		table.WithHeight(5),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Bold(true)
	t.SetStyles(s)
	return t
}

func methodLabels() []string {
	labels := make([]string, len(sale.Methods))
	for i, m := range sale.Methods {
		labels[i] = string(m)
	}
	return labels
}

// Init returns the initial commands: clock ticker and session totals.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadSession())
}

// Close removes the shortcut listener. It is safe to call more than once.
func (m Model) Close() {
	if m.unbind != nil {
		m.unbind()
	}
}

// Location returns the current screen location.
func (m Model) Location() *url.URL {
	return m.location
}

// tickCmd schedules the next one-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadSession reads the session totals from the journal.
func (m Model) loadSession() tea.Cmd {
	if m.session == nil {
		return nil
	}
	r := m.session
	return func() tea.Msg {
		sum, err := r.SessionSummary()
		return sessionLoadedMsg{summary: sum, err: err}
	}
}

func (m Model) choices() []catalog.Product {
	if m.catalog == nil {
		return nil
	}
	return m.catalog.Choices()
}

// navigate moves the screen to loc, reloading the located sale and resetting
// the forms the way a page load does.
func (m Model) navigate(loc *url.URL) Model {
	m.location = loc
	m.current = nil
	if id, ok := saleID(loc); ok && m.svc != nil {
		if s, err := m.svc.Get(id); err == nil {
			m.current = s
		}
	}

	m.qty.SetValue("")
	m.amount.SetValue("")
	m.reason.SetValue("")
	m.method = m.method.Reset()
	m.items.SetRows(panels.ItemRows(m.current))
	m.items.SetCursor(0)
	return m.setFocus(FocusBody)
}

// refresh replaces the located sale snapshot without resetting the forms.
func (m Model) refresh(s *sale.Sale) Model {
	m.current = s
	cursor := m.items.Cursor()
	m.items.SetRows(panels.ItemRows(s))
	if n := len(m.items.Rows()); cursor >= n && n > 0 {
		m.items.SetCursor(n - 1)
	}
	if !m.present(m.focus) {
		m = m.setFocus(FocusBody)
	}
	return m
}

// present reports whether the widget for f is on screen.
func (m Model) present(f FocusTarget) bool {
	switch f {
	case FocusProducts, FocusQty:
		return addPresent(m.current)
	case FocusMethod, FocusAmount:
		return payPresent(m.current)
	case FocusReason:
		return cancelPresent(m.current)
	case FocusItems:
		return m.current != nil
	default:
		return true
	}
}

// setFocus moves keyboard focus to f, blurring every other widget.
func (m Model) setFocus(f FocusTarget) Model {
	m.focus = f
	m.products = m.products.SetFocused(f == FocusProducts)
	m.qty.Blur()
	m.amount.Blur()
	m.reason.Blur()
	m.method = m.method.Blur()
	m.items.Blur()

	switch f {
	case FocusQty:
		m.qty.Focus()
	case FocusMethod:
		m.method = m.method.Focus()
	case FocusAmount:
		m.amount.Focus()
	case FocusReason:
		m.reason.Focus()
	case FocusItems:
		m.items.Focus()
	}
	return m
}

// page snapshots the screen for one key press.
func (m Model) page() *page {
	return &page{
		loc:   m.location,
		focus: m.focus.Kind(),
		sale:  m.current,
	}
}

// resize recomputes the layout and widget sizes.
func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.layout = Calculate(width, height)
	m.help.Width = width
	if m.layout.TooSmall {
		return m
	}
	productsW, productsH := innerDims(m.layout.Products)
	saleW, saleH := innerDims(m.layout.Sale)
	actW, actH := innerDims(m.layout.Activity)

	m.products = m.products.SetSize(productsW, productsH)
	m.items.SetColumns(panels.ItemColumns(saleW))
	m.items.SetWidth(saleW)
	tableH := saleH - saleChrome
	if tableH < 3 {
		tableH = 3
	}
	m.items.SetHeight(tableH)
	m.qty.Width = 12
	m.amount.Width = 14
	m.reason.Width = saleW - 12
	m.activity = m.activity.SetSize(actW, actH)
	return m
}

// saleChrome is the number of sale panel rows outside the items table:
// summary (3), forms (4), controls (1) and spacing (2).
const saleChrome = 10

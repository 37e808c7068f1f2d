package panels

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/catalog"
)

// productItem implements list.Item for a catalog product.
type productItem struct {
	product catalog.Product
}

func (i productItem) Title() string { return i.product.Label() }

func (i productItem) Description() string {
	return fmt.Sprintf("%s/%s", i.product.Price, i.product.Unit)
}

func (i productItem) FilterValue() string {
	return i.product.Name + " " + i.product.EAN + " " + i.product.SKU
}

// productDelegate renders one product per line.
type productDelegate struct {
	focused *bool
}

func (d productDelegate) Height() int                             { return 1 }
func (d productDelegate) Spacing() int                            { return 0 }
func (d productDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d productDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(productItem)
	if !ok {
		return
	}
	s := fmt.Sprintf("%s  %s", item.Title(), item.Description())
	switch {
	case index == m.Index() && *d.focused:
		s = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E9E5B")).Render("> " + s)
	case index == m.Index():
		s = lipgloss.NewStyle().Bold(true).Render("> " + s)
	default:
		s = "  " + s
	}
	fmt.Fprint(w, s)
}

// ProductsPanel is the product select of the add-item form.
type ProductsPanel struct {
	list    list.Model
	focused *bool
	width   int
	height  int
}

// NewProductsPanel creates a product select showing products.
func NewProductsPanel(products []catalog.Product, w, h int) ProductsPanel {
	focused := new(bool)
	l := list.New(toItems(products), productDelegate{focused: focused}, w, h)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return ProductsPanel{
		list:    l,
		focused: focused,
		width:   w,
		height:  h,
	}
}

func toItems(products []catalog.Product) []list.Item {
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p}
	}
	return items
}

// SetProducts replaces the products, keeping the selected product when it
// is still listed.
func (p ProductsPanel) SetProducts(products []catalog.Product) ProductsPanel {
	prev, hadPrev := p.Selected()
	p.list.SetItems(toItems(products))
	if hadPrev {
		for i, pr := range products {
			if pr.ID == prev.ID {
				p.list.Select(i)
				break
			}
		}
	}
	return p
}

// Selected returns the selected product.
func (p ProductsPanel) Selected() (catalog.Product, bool) {
	if item, ok := p.list.SelectedItem().(productItem); ok {
		return item.product, true
	}
	return catalog.Product{}, false
}

// Len returns the number of listed products.
func (p ProductsPanel) Len() int {
	return len(p.list.Items())
}

// Filtering reports whether the filter prompt is capturing keys.
func (p ProductsPanel) Filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// SetFocused marks whether the select holds keyboard focus.
func (p ProductsPanel) SetFocused(focused bool) ProductsPanel {
	*p.focused = focused
	return p
}

// SetSize resizes the panel.
func (p ProductsPanel) SetSize(w, h int) ProductsPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, h)
	return p
}

// Update handles key/mouse messages for the panel.
func (p ProductsPanel) Update(msg tea.Msg) (ProductsPanel, tea.Cmd) {
	var cmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok && !p.Filtering() {
		switch k.String() {
		case "j":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "k":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		}
	}
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the product select.
func (p ProductsPanel) View() string {
	if len(p.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No active products")
	}
	return p.list.View()
}

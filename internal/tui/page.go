package tui

import (
	"net/url"
	"strconv"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
)

// posPath is the path of the point-of-sale screen.
const posPath = "/pos"

// homeLocation returns the location of the screen without an active sale.
func homeLocation() *url.URL {
	return &url.URL{Path: posPath}
}

// saleLocation returns the location of the screen showing sale id.
func saleLocation(id int) *url.URL {
	q := url.Values{}
	q.Set(shortcut.SaleParam, strconv.Itoa(id))
	return &url.URL{Path: posPath, RawQuery: q.Encode()}
}

// saleID parses the sale_id of loc. ok is false when it is absent or not a
// number.
func saleID(loc *url.URL) (id int, ok bool) {
	raw := shortcut.ActiveSale(loc)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// intent is what a control click or form submit asked the screen to do.
type intent int

const (
	intentNone intent = iota
	intentOpen
	intentAdd
	intentPay
	intentCancel
)

// page is a snapshot of the screen for one key press. Clicking its controls
// records an intent that the model turns into a service command afterwards.
type page struct {
	loc   *url.URL
	focus shortcut.FocusKind
	sale  *sale.Sale // located sale, nil when absent or unknown

	intent intent
}

type control struct {
	p *page
	i intent
}

func (c control) Click()  { c.p.intent = c.i }
func (c control) Submit() { c.p.intent = c.i }

// OpenSaleControl is always on screen.
func (p *page) OpenSaleControl() shortcut.Control {
	return control{p, intentOpen}
}

// AddItemForm is on screen while the located sale is open.
func (p *page) AddItemForm() shortcut.Form {
	if !addPresent(p.sale) {
		return nil
	}
	return control{p, intentAdd}
}

// PayControl is on screen while the located sale is open and has items.
func (p *page) PayControl() shortcut.Control {
	if !payPresent(p.sale) {
		return nil
	}
	return control{p, intentPay}
}

// CancelControl is on screen while the located sale is open or completed.
func (p *page) CancelControl() shortcut.Control {
	if !cancelPresent(p.sale) {
		return nil
	}
	return control{p, intentCancel}
}

func (p *page) Location() *url.URL          { return p.loc }
func (p *page) Focused() shortcut.FocusKind { return p.focus }

func addPresent(s *sale.Sale) bool {
	return s != nil && s.Status == sale.StatusOpen
}

func payPresent(s *sale.Sale) bool {
	return addPresent(s) && len(s.Items) > 0
}

func cancelPresent(s *sale.Sale) bool {
	return s != nil && (s.Status == sale.StatusOpen || s.Status == sale.StatusCompleted)
}

// viewSlot holds the page the bound dispatcher resolves on each event. It is
// shared by every copy of the Model.
type viewSlot struct {
	page *page
}

func (s *viewSlot) resolve() shortcut.View {
	if s.page == nil {
		return nil
	}
	return s.page
}

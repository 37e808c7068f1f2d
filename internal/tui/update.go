package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case saleResultMsg:
		return m.handleResult(msg)

	case sessionLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("session summary")
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case SaleEventMsg:
		ev := sale.Event(msg)
		actW, _ := innerDims(m.layout.Activity)
		m.activity = m.activity.Append(m.theme.RenderEvent(ev, actW))
		if id, ok := saleID(m.location); ok && id == ev.SaleID {
			s := ev.Sale
			m = m.refresh(s.Clone())
		}
		return m, nil

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.flash = Flash{Text: "Catalog reload failed: " + msg.Err.Error(), Category: FlashWarning}
			return m, nil
		}
		m.products = m.products.SetProducts(m.choices())
		m.flash = Flash{Text: fmt.Sprintf("Catalog reloaded: %d products", msg.Products), Category: FlashInfo}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	code, isShortcut := shortcutCode(msg)
	filtering := m.focus == FocusProducts && m.products.Filtering()

	// The filter prompt keeps Enter and typed keys until it is accepted or
	// dismissed. F2, F8 and F9 reach the document regardless of focus.
	if isShortcut && !(filtering && code == shortcut.CodeEnter) {
		return m.handleShortcut(code, msg)
	}
	if filtering {
		var cmd tea.Cmd
		m.products, cmd = m.products.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "tab":
		return m.setFocus(cycle(m.focus, 1, m.present)), nil
	case "shift+tab":
		return m.setFocus(cycle(m.focus, -1, m.present)), nil
	case "esc":
		if m.present(FocusItems) && m.focus != FocusItems {
			return m.setFocus(FocusItems), nil
		}
		return m.setFocus(FocusBody), nil
	case "f1":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case "delete":
		if m.focus == FocusItems && addPresent(m.current) && len(m.current.Items) > 0 {
			return m, m.removeCmd(m.current.ID, m.items.Cursor())
		}
		return m, nil
	}

	return m.delegateToFocused(msg)
}

// handleShortcut dispatches code through the document. When a listener
// prevented the default action the recorded intent is performed; otherwise
// the key falls through to the focused widget.
func (m Model) handleShortcut(code shortcut.Code, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.page()
	m.slot.page = p
	prevented := m.doc.Dispatch(shortcut.NewEvent(code))
	m.slot.page = nil

	if prevented {
		return m.perform(p.intent)
	}
	return m.defaultKey(code, msg)
}

// defaultKey is the behaviour of a shortcut key the dispatcher left alone.
func (m Model) defaultKey(code shortcut.Code, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if code != shortcut.CodeEnter {
		return m, nil
	}
	switch m.focus {
	case FocusProducts:
		return m.setFocus(FocusQty), nil
	case FocusQty:
		if addPresent(m.current) {
			return m.perform(intentAdd)
		}
	case FocusMethod:
		return m.setFocus(FocusAmount), nil
	case FocusAmount:
		if payPresent(m.current) {
			return m.perform(intentPay)
		}
	case FocusReason:
		if cancelPresent(m.current) {
			return m.perform(intentCancel)
		}
	}
	return m.delegateToFocused(msg)
}

// perform turns an intent into a service command.
func (m Model) perform(i intent) (tea.Model, tea.Cmd) {
	switch i {
	case intentOpen:
		return m, m.openCmd()

	case intentAdd:
		if m.current == nil {
			return m, nil
		}
		product, ok := m.products.Selected()
		qty, err := m.quantity()
		if !ok || err != nil {
			m.flash = Flash{Text: "Enter a product and a valid quantity", Category: FlashDanger}
			return m, nil
		}
		return m, m.addCmd(m.current.ID, product.ID, qty)

	case intentPay:
		if m.current == nil {
			return m, nil
		}
		amount, err := m.payment()
		if err != nil {
			m.flash = Flash{Text: "Invalid payment", Category: FlashDanger}
			return m, nil
		}
		method := sale.Methods[m.method.Selected()]
		return m, m.payCmd(m.current.ID, method, amount)

	case intentCancel:
		if m.current == nil {
			return m, nil
		}
		return m, m.cancelCmd(m.current.ID, m.reason.Value())
	}
	return m, nil
}

// quantity parses the quantity input. Empty means one unit.
func (m Model) quantity() (sale.Quantity, error) {
	raw := strings.TrimSpace(m.qty.Value())
	if raw == "" {
		return sale.One, nil
	}
	q, err := sale.ParseQuantity(raw)
	if err != nil {
		return 0, err
	}
	if q <= 0 {
		return 0, sale.ErrInvalid
	}
	return q, nil
}

// payment parses the amount input. Empty means the sale total.
func (m Model) payment() (sale.Money, error) {
	raw := strings.TrimSpace(m.amount.Value())
	if raw == "" {
		return m.current.Total, nil
	}
	a, err := sale.ParseMoney(raw)
	if err != nil {
		return 0, err
	}
	if a < 0 {
		return 0, sale.ErrInvalid
	}
	return a, nil
}

func (m Model) openCmd() tea.Cmd {
	svc, ctx, op := m.svc, m.ctx, m.op
	return func() tea.Msg {
		s, err := svc.Open(ctx, op)
		return saleResultMsg{action: shortcut.ActionOpenSale, sale: s, err: err}
	}
}

func (m Model) addCmd(id int, productID string, qty sale.Quantity) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		s, err := svc.AddItem(ctx, id, productID, qty)
		return saleResultMsg{action: shortcut.ActionAddItem, id: id, sale: s, err: err}
	}
}

func (m Model) removeCmd(id, index int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		s, err := svc.RemoveItem(ctx, id, index)
		return saleResultMsg{action: shortcut.ActionNone, id: id, sale: s, err: err}
	}
}

func (m Model) payCmd(id int, method sale.Method, amount sale.Money) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		s, err := svc.Pay(ctx, id, method, amount)
		return saleResultMsg{action: shortcut.ActionPay, id: id, sale: s, err: err}
	}
}

func (m Model) cancelCmd(id int, reason string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		s, err := svc.Cancel(ctx, id, reason)
		return saleResultMsg{action: shortcut.ActionCancel, id: id, sale: s, err: err}
	}
}

// handleResult applies a finished service command: flash, then redirect the
// way the sale routes do.
func (m Model) handleResult(msg saleResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("action", msg.action.String()).Int("sale", msg.id).Msg("sale command failed")
		flash := Flash{Text: errorText(msg.action, msg.err), Category: FlashDanger}
		if msg.action == shortcut.ActionOpenSale {
			m.flash = flash
			return m, nil
		}
		m = m.navigate(saleLocation(msg.id))
		m.flash = flash
		return m, m.loadSession()
	}

	s := msg.sale
	switch msg.action {
	case shortcut.ActionOpenSale:
		m = m.navigate(saleLocation(s.ID))
		m.flash = Flash{Text: fmt.Sprintf("Sale #%d opened", s.ID), Category: FlashSuccess}
	case shortcut.ActionAddItem:
		m = m.navigate(saleLocation(s.ID))
		if n := len(s.Items); n > 0 {
			it := s.Items[n-1]
			m.flash = Flash{Text: fmt.Sprintf("Added %s x %s", it.Qty, it.Name), Category: FlashInfo}
		}
	case shortcut.ActionPay:
		m = m.navigate(homeLocation())
		m.flash = Flash{Text: fmt.Sprintf("Sale #%d completed. Change: %s", s.ID, s.Change), Category: FlashSuccess}
	case shortcut.ActionCancel:
		m = m.navigate(homeLocation())
		m.flash = Flash{Text: "Sale canceled", Category: FlashInfo}
	default:
		m = m.navigate(saleLocation(s.ID))
		m.flash = Flash{Text: "Item removed", Category: FlashInfo}
		m = m.setFocus(FocusItems)
	}
	return m, m.loadSession()
}

// errorText maps a service error to the flash shown to the operator.
func errorText(a shortcut.Action, err error) string {
	switch {
	case errors.Is(err, sale.ErrForbidden):
		return "You are not allowed to do that"
	case errors.Is(err, sale.ErrNotFound):
		return "Sale or product not found"
	case errors.Is(err, sale.ErrEmpty):
		return "Add an item before paying"
	case errors.Is(err, sale.ErrNotOpen):
		return "This sale is no longer open"
	case errors.Is(err, sale.ErrInvalid) && a == shortcut.ActionPay:
		return "Invalid payment"
	case errors.Is(err, sale.ErrInvalid) && a == shortcut.ActionAddItem:
		return "Enter a product and a valid quantity"
	default:
		return "Error: " + err.Error()
	}
}

// delegateToFocused forwards a key to the widget holding focus.
func (m Model) delegateToFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusProducts:
		m.products, cmd = m.products.Update(msg)
	case FocusQty:
		m.qty, cmd = m.qty.Update(msg)
	case FocusMethod:
		m.method, cmd = m.method.Update(msg)
	case FocusAmount:
		m.amount, cmd = m.amount.Update(msg)
	case FocusReason:
		m.reason, cmd = m.reason.Update(msg)
	case FocusItems:
		m.items, cmd = m.items.Update(msg)
	default:
		m.activity, cmd = m.activity.Update(msg)
	}
	return m, cmd
}

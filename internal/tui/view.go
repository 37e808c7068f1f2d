package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/tui/panels"
)

// View renders the POS screen: header, flash line, products, sale, activity
// and footer.
func (m Model) View() string {
	if m.layout.TooSmall {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			warningStyle.Render("Terminal too small (minimum 80×24)"))
	}

	header := panels.RenderHeader(panels.HeaderProps{
		StoreName: m.storeName,
		Operator:  m.op.Name,
		Role:      string(m.op.Role),
		Location:  m.location.String(),
		Sales:     m.summary.Sales,
		Revenue:   m.summary.Revenue.String(),
		Clock:     m.now,
	}, m.width, m.theme.AccentHeaderStyle())

	products := m.box(m.layout.Products, m.focus == FocusProducts, m.products.View())
	saleBox := m.box(m.layout.Sale, m.saleFocused(), m.renderSale())
	activity := m.box(m.layout.Activity, false, m.activity.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, products,
		lipgloss.JoinVertical(lipgloss.Left, saleBox, activity))

	footer := panels.RenderFooter(panels.FooterProps{
		Focus: m.focus.String(),
		Help:  m.help.View(m.keys),
	}, m.width)

	return strings.Join([]string{header, m.renderFlash(), body, footer}, "\n")
}

// box draws a bordered panel filling r.
func (m Model) box(r Rect, focused bool, content string) string {
	w, h := innerDims(r)
	return m.theme.PanelBorderStyle(focused).
		Width(w).Height(h).MaxHeight(r.Height).
		Render(content)
}

func (m Model) saleFocused() bool {
	switch m.focus {
	case FocusQty, FocusMethod, FocusAmount, FocusReason, FocusItems:
		return true
	default:
		return false
	}
}

func (m Model) renderFlash() string {
	if m.flash.Text == "" {
		return ""
	}
	line := flashIcon(m.flash.Category) + " " + m.flash.Text
	return flashStyle(m.flash.Category).Render(truncate(line, m.width))
}

// renderSale renders the sale panel: summary, items, the forms on screen and
// the shortcut controls available.
func (m Model) renderSale() string {
	w, _ := innerDims(m.layout.Sale)
	lines := []string{panels.RenderSaleSummary(m.current, shortcut.ActiveSale(m.location), w), ""}

	if m.current != nil {
		if len(m.current.Items) == 0 {
			lines = append(lines, labelStyle.Render("No items yet."))
		} else {
			lines = append(lines, m.items.View())
		}
		lines = append(lines, "")
	}

	if addPresent(m.current) {
		product := "—"
		if p, ok := m.products.Selected(); ok {
			product = p.Label()
		}
		lines = append(lines, m.field("Product", FocusProducts, product))
		lines = append(lines, m.field("Qty", FocusQty, m.qty.View()))
	}
	if payPresent(m.current) {
		lines = append(lines, m.field("Method", FocusMethod, m.method.View())+"   "+
			m.field("Amount", FocusAmount, m.amount.View()))
	}
	if cancelPresent(m.current) {
		lines = append(lines, m.field("Reason", FocusReason, m.reason.View()))
	}

	lines = append(lines, "", m.renderControls())
	return strings.Join(lines, "\n")
}

// field renders a form label followed by its widget. The label takes the
// accent color while the widget holds focus.
func (m Model) field(label string, f FocusTarget, widget string) string {
	l := labelStyle.Render(label + ":")
	if m.focus == f {
		l = m.theme.AccentTextStyle().Render(label + ":")
	}
	return l + " " + widget
}

// renderControls lists the shortcut controls on screen.
func (m Model) renderControls() string {
	controls := []string{"[F2] New sale"}
	if addPresent(m.current) {
		controls = append(controls, "[Enter] Add item")
	}
	if payPresent(m.current) {
		controls = append(controls, fmt.Sprintf("[F8] Pay %s", m.current.Total))
	}
	if cancelPresent(m.current) {
		controls = append(controls, "[F9] Cancel sale")
	}
	return m.theme.AccentTextStyle().Render(strings.Join(controls, "  "))
}

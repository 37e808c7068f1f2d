package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

var (
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
	statusOpen = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D")).Bold(true)
	statusDone = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")).Bold(true)
	statusVoid = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// RenderSaleSummary renders the heading and totals of s. A nil sale renders
// the idle prompt, or a not-found note when requested names a sale id.
func RenderSaleSummary(s *sale.Sale, requested string, width int) string {
	if s == nil {
		if requested != "" {
			return statusVoid.Render(fmt.Sprintf("Sale %s not found.", requested)) + "\n" +
				dimStyle.Render("Press F2 to open a new sale.")
		}
		return dimStyle.Render("No sale selected. Press F2 to open a new sale.")
	}

	status := s.Status.Label()
	switch s.Status {
	case sale.StatusOpen:
		status = statusOpen.Render(status)
	case sale.StatusCompleted:
		status = statusDone.Render(status)
	case sale.StatusCanceled:
		status = statusVoid.Render(status)
	}

	head := fmt.Sprintf("%s  %s  %s", boldStyle.Render(fmt.Sprintf("Sale #%d", s.ID)), status,
		dimStyle.Render(fmt.Sprintf("%s · opened %s", s.Operator.Name, s.OpenedAt.Format("15:04"))))

	totals := []string{
		fmt.Sprintf("%s %s", dimStyle.Render("subtotal"), s.Subtotal),
		fmt.Sprintf("%s %s", dimStyle.Render("discount"), s.Discount),
		fmt.Sprintf("%s %s", dimStyle.Render("total"), boldStyle.Render(s.Total.String())),
	}
	lines := []string{head, strings.Join(totals, "   ")}

	switch s.Status {
	case sale.StatusCompleted:
		lines = append(lines, fmt.Sprintf("%s %s   %s %s   %s %s",
			dimStyle.Render("paid"), s.Paid,
			dimStyle.Render("via"), s.Method,
			dimStyle.Render("change"), s.Change))
	case sale.StatusCanceled:
		lines = append(lines, dimStyle.Render("reason: ")+s.Reason)
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// ItemColumns returns the items table columns sized to width.
func ItemColumns(width int) []table.Column {
	fixed := 4 + 10 + 10 + 10 + 10
	name := width - fixed - 6
	if name < 12 {
		name = 12
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Product", Width: name},
		{Title: "Qty", Width: 10},
		{Title: "Unit", Width: 10},
		{Title: "Disc.", Width: 10},
		{Title: "Total", Width: 10},
	}
}

// ItemRows returns one table row per item of s.
func ItemRows(s *sale.Sale) []table.Row {
	if s == nil {
		return nil
	}
	rows := make([]table.Row, len(s.Items))
	for i, it := range s.Items {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			it.Name,
			it.Qty.String(),
			it.UnitPrice.String(),
			it.Discount.String(),
			it.Total.String(),
		}
	}
	return rows
}

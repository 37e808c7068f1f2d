package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus string // "body", "products", "qty", "method", "amount", "reason", "items"
	Help  string // rendered key help
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: focus and its local keys. Right side: the key help.
func RenderFooter(props FooterProps, width int) string {
	focus := props.Focus
	if focus == "" {
		focus = "body"
	}
	left := "focus: " + focus
	if hints := focusHints(focus); hints != "" {
		left += "  " + hints
	}
	right := props.Help

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// focusHints returns the keys handled by the focused widget.
func focusHints(focus string) string {
	switch focus {
	case "products":
		return "↑/↓:choose  /:filter"
	case "method":
		return "←/→:method"
	case "items":
		return "↑/↓:select  del:remove"
	case "qty", "amount", "reason":
		return "type to edit"
	default:
		return ""
	}
}

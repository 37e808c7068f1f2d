package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// Theme holds accent-color-derived styles for the POS screen.
type Theme struct {
	accentStyle     lipgloss.Style // header background
	accentText      lipgloss.Style // totals and focused labels
	borderFocused   lipgloss.Style // focused panel border
	borderUnfocused lipgloss.Style // unfocused panel border
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#2E9E5B").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		accentText: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// AccentTextStyle returns bold accent-colored text.
func (t Theme) AccentTextStyle() lipgloss.Style {
	return t.accentText
}

// PanelBorderStyle returns the appropriate border style for a panel based on
// whether one of its widgets holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// RenderEvent renders a sale event as a single activity-feed line.
func (t Theme) RenderEvent(ev sale.Event, width int) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", ev.Timestamp.Format("15:04:05")))
	text := truncate(ev.Message, width-14)
	line := eventIcon(string(ev.Kind)) + " " + text

	switch ev.Kind {
	case sale.EventPaid:
		return fmt.Sprintf("%s  %s", ts, successStyle.Render(line))
	case sale.EventCanceled:
		return fmt.Sprintf("%s  %s", ts, dangerStyle.Render(line))
	case sale.EventItemAdded:
		return fmt.Sprintf("%s  %s", ts, itemStyle.Render(line))
	case sale.EventItemRemoved:
		return fmt.Sprintf("%s  %s", ts, removedStyle.Render(line))
	case sale.EventOpened:
		return fmt.Sprintf("%s  %s", ts, t.accentText.Render(line))
	default:
		return fmt.Sprintf("%s  %s", ts, infoStyle.Render(line))
	}
}

// truncate shortens s to at most n runes, ending in "…" when cut.
func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Package tui provides the bubbletea + lipgloss point-of-sale screen.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color (green).
const defaultAccentColor = "#2E9E5B"

// Color palette.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorOrange = lipgloss.Color("#FFA54F")
)

// Styles used across the TUI. Accent-dependent styles live on Theme.
var (
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	removedStyle = lipgloss.NewStyle().
			Foreground(colorOrange)
)

// FlashCategory selects how a flash message is rendered.
type FlashCategory int

const (
	FlashInfo FlashCategory = iota
	FlashSuccess
	FlashWarning
	FlashDanger
)

// flashStyle returns the lipgloss style for a flash category.
func flashStyle(c FlashCategory) lipgloss.Style {
	switch c {
	case FlashSuccess:
		return successStyle
	case FlashWarning:
		return warningStyle
	case FlashDanger:
		return dangerStyle
	default:
		return infoStyle
	}
}

// flashIcon returns the prefix shown before a flash message.
func flashIcon(c FlashCategory) string {
	switch c {
	case FlashSuccess:
		return "✔"
	case FlashWarning:
		return "!"
	case FlashDanger:
		return "✖"
	default:
		return "•"
	}
}

// eventIcon returns the symbol for a sale event kind in the activity feed.
func eventIcon(k string) string {
	switch k {
	case "opened":
		return "▶"
	case "item_added":
		return "+"
	case "item_removed":
		return "−"
	case "paid":
		return "$"
	case "canceled":
		return "✖"
	default:
		return "•"
	}
}

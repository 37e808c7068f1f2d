// Package components provides reusable widgets for the POS screen.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// choiceSelectedStyle renders the selected option with bold accent text.
var choiceSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E9E5B"))

// choiceIdleStyle renders unselected options dimmed.
var choiceIdleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// Choice is a single-line select: a row of options of which exactly one is
// selected. Left/right (or h/l) move the selection while it is focused.
type Choice struct {
	options  []string
	selected int
	focused  bool
}

// NewChoice creates a Choice with the given option labels. The first option
// is selected.
func NewChoice(options []string) Choice {
	return Choice{options: options}
}

// Selected returns the index of the selected option.
func (c Choice) Selected() int {
	return c.selected
}

// Value returns the label of the selected option, or "" when empty.
func (c Choice) Value() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.selected]
}

// Next returns a Choice with the next option selected (wraps around).
func (c Choice) Next() Choice {
	if len(c.options) == 0 {
		return c
	}
	c.selected = (c.selected + 1) % len(c.options)
	return c
}

// Prev returns a Choice with the previous option selected (wraps around).
func (c Choice) Prev() Choice {
	if len(c.options) == 0 {
		return c
	}
	c.selected = (c.selected + len(c.options) - 1) % len(c.options)
	return c
}

// Reset selects the first option.
func (c Choice) Reset() Choice {
	c.selected = 0
	return c
}

// Focus and Blur toggle whether key presses move the selection.
func (c Choice) Focus() Choice { c.focused = true; return c }
func (c Choice) Blur() Choice  { c.focused = false; return c }

// Focused reports whether the choice has focus.
func (c Choice) Focused() bool { return c.focused }

// Update moves the selection on left/right keys while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "right", "l", "down", "j":
			return c.Next(), nil
		case "left", "h", "up", "k":
			return c.Prev(), nil
		}
	}
	return c, nil
}

// View renders the options as a single line. The selected option is wrapped
// in brackets and highlighted.
func (c Choice) View() string {
	if len(c.options) == 0 {
		return ""
	}
	parts := make([]string, len(c.options))
	for i, label := range c.options {
		if i == c.selected {
			parts[i] = choiceSelectedStyle.Render("[" + label + "]")
		} else {
			parts[i] = choiceIdleStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

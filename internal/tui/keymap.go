package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
)

// keyMap holds the bindings shown in the footer help.
type keyMap struct {
	OpenSale key.Binding
	AddItem  key.Binding
	Pay      key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Body     key.Binding
	Remove   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		OpenSale: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "open sale")),
		AddItem:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add item")),
		Pay:      key.NewBinding(key.WithKeys("f8"), key.WithHelp("F8", "pay")),
		Cancel:   key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "cancel")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Body:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "items")),
		Remove:   key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "remove item")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenSale, k.AddItem, k.Pay, k.Cancel, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.OpenSale, k.AddItem, k.Pay, k.Cancel},
		{k.Next, k.Prev, k.Body, k.Remove},
		{k.Help, k.Quit},
	}
}

// shortcutCode maps a terminal key press to a shortcut key code. The code
// names the physical key whatever modifiers are held. Alt arrives on the
// bare key type; xterm reports Shift+F2 as F14 and Shift+F8 as F20. The
// terminal reader has no key type for Shift+F9.
func shortcutCode(msg tea.KeyMsg) (shortcut.Code, bool) {
	switch msg.Type {
	case tea.KeyF2, tea.KeyF14:
		return shortcut.CodeF2, true
	case tea.KeyEnter:
		return shortcut.CodeEnter, true
	case tea.KeyF8, tea.KeyF20:
		return shortcut.CodeF8, true
	case tea.KeyF9:
		return shortcut.CodeF9, true
	default:
		return "", false
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
)

func TestShortcutCode(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   shortcut.Code
		wantOK bool
	}{
		{"f2", tea.KeyMsg{Type: tea.KeyF2}, shortcut.CodeF2, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, shortcut.CodeEnter, true},
		{"f8", tea.KeyMsg{Type: tea.KeyF8}, shortcut.CodeF8, true},
		{"f9", tea.KeyMsg{Type: tea.KeyF9}, shortcut.CodeF9, true},
		{"alt+f2", tea.KeyMsg{Type: tea.KeyF2, Alt: true}, shortcut.CodeF2, true},
		{"shift+f2", tea.KeyMsg{Type: tea.KeyF14}, shortcut.CodeF2, true},
		{"shift+f8", tea.KeyMsg{Type: tea.KeyF20}, shortcut.CodeF8, true},
		{"alt+f9", tea.KeyMsg{Type: tea.KeyF9, Alt: true}, shortcut.CodeF9, true},
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, shortcut.CodeEnter, true},
		{"f3", tea.KeyMsg{Type: tea.KeyF3}, "", false},
		{"shift+f3", tea.KeyMsg{Type: tea.KeyF15}, "", false},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, "", false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := shortcutCode(tt.msg)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("shortcutCode() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	k := defaultKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	groups := k.FullHelp()
	if len(groups) != 3 {
		t.Fatalf("FullHelp groups = %d, want 3", len(groups))
	}
	for _, b := range groups[0] {
		if b.Help().Key == "" {
			t.Errorf("binding %v has no help key", b.Keys())
		}
	}
}

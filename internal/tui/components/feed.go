package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFeedLimit is the number of lines a Feed keeps.
const DefaultFeedLimit = 500

// Feed is a bounded, scrollable list of pre-rendered lines that wraps
// bubbles/viewport. New lines keep the view pinned to the bottom unless the
// user has scrolled up.
type Feed struct {
	vp     viewport.Model
	lines  []string
	limit  int
	pinned bool
}

// NewFeed creates a Feed with the given dimensions.
func NewFeed(w, h int) Feed {
	return Feed{
		vp:     viewport.New(w, h),
		limit:  DefaultFeedLimit,
		pinned: true,
	}
}

// Append adds a pre-rendered (styled) line, dropping the oldest line when
// the limit is reached.
func (f Feed) Append(rendered string) Feed {
	lines := append(f.lines, rendered)
	if len(lines) > f.limit {
		lines = append([]string(nil), lines[len(lines)-f.limit:]...)
	}
	f.lines = lines
	f.vp.SetContent(strings.Join(f.lines, "\n"))
	if f.pinned {
		f.vp.GotoBottom()
	}
	return f
}

// Len returns the number of lines held.
func (f Feed) Len() int {
	return len(f.lines)
}

// SetSize resizes the feed to the given dimensions.
func (f Feed) SetSize(w, h int) Feed {
	f.vp.Width = w
	f.vp.Height = h
	if f.pinned {
		f.vp.GotoBottom()
	}
	return f
}

// Pinned reports whether the feed follows new lines.
func (f Feed) Pinned() bool {
	return f.pinned
}

// Update handles scroll keys and mouse events. Scrolling to the bottom pins
// the feed again.
func (f Feed) Update(msg tea.Msg) (Feed, tea.Cmd) {
	var cmd tea.Cmd
	f.vp, cmd = f.vp.Update(msg)
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		f.pinned = f.vp.AtBottom()
	}
	return f, cmd
}

// View renders the visible lines.
func (f Feed) View() string {
	return f.vp.View()
}

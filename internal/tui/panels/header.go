// Package panels provides the panel components for the POS screen.
package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderProps holds all data needed to render the header bar.
// Plain strings avoid importing the parent tui package.
type HeaderProps struct {
	StoreName string
	Operator  string
	Role      string
	Location  string // e.g. "/pos?sale_id=3"
	Sales     int    // sales in this session
	Revenue   string // formatted session revenue
	Clock     time.Time
}

// RenderHeader renders the header bar. accentStyle is applied to the full
// header bar width.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	name := "Mercearia"
	if props.StoreName != "" {
		name = props.StoreName
	}

	parts := []string{"🛒 " + name}
	if props.Operator != "" {
		op := props.Operator
		if props.Role != "" {
			op += " (" + props.Role + ")"
		}
		parts = append(parts, "operator: "+op)
	}

	loc := props.Location
	if loc == "" {
		loc = "—"
	}
	parts = append(parts, loc)

	if props.Sales > 0 {
		parts = append(parts, fmt.Sprintf("session: %d sales, %s", props.Sales, props.Revenue))
	}
	if !props.Clock.IsZero() {
		parts = append(parts, props.Clock.Format("15:04"))
	}

	content := strings.Join(parts, "  │  ")
	return accentStyle.Width(width).Render(content)
}

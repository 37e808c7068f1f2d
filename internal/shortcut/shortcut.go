// Package shortcut maps point-of-sale keyboard shortcuts onto controls that
// already exist on the current screen. It owns no state: every key press is
// evaluated against a View resolved at dispatch time.
package shortcut

import "net/url"

// Code is the physical key reported by a key press, independent of modifiers.
type Code string

const (
	CodeF2    Code = "F2"
	CodeEnter Code = "Enter"
	CodeF8    Code = "F8"
	CodeF9    Code = "F9"
)

// SaleParam is the query parameter that identifies the active sale.
const SaleParam = "sale_id"

// Event is a single key press travelling through a Document.
type Event struct {
	Code Code

	prevented bool
}

// NewEvent returns an event for the given key code.
func NewEvent(code Code) *Event {
	return &Event{Code: code}
}

// PreventDefault suppresses the default handling of the key.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// FocusKind classifies the element that currently holds keyboard focus.
type FocusKind int

const (
	FocusNone   FocusKind = iota // nothing focused
	FocusInput                   // free-text input
	FocusSelect                  // selection list
	FocusOther                   // any other focusable element
)

// String returns the human-readable name of the focus kind.
func (f FocusKind) String() string {
	switch f {
	case FocusNone:
		return "none"
	case FocusInput:
		return "input"
	case FocusSelect:
		return "select"
	case FocusOther:
		return "other"
	default:
		return "unknown"
	}
}

// capturesEnter reports whether Enter belongs to the focused element.
func (f FocusKind) capturesEnter() bool {
	return f == FocusInput || f == FocusSelect
}

// Control is a clickable element such as a button.
type Control interface {
	Click()
}

// Form is a submittable element.
type Form interface {
	Submit()
}

// View exposes the parts of the current screen the shortcuts act on.
// Any accessor may return nil when the element is not on screen; callers
// must return an untyped nil, not a nil pointer wrapped in the interface.
type View interface {
	OpenSaleControl() Control
	AddItemForm() Form
	PayControl() Control
	CancelControl() Control

	// Location is the URL of the current screen. May be nil.
	Location() *url.URL

	// Focused reports what kind of element holds focus.
	Focused() FocusKind
}

// ActiveSale returns the sale_id query value of loc, or "" when there is none.
func ActiveSale(loc *url.URL) string {
	if loc == nil {
		return ""
	}
	return loc.Query().Get(SaleParam)
}

package tui

import "github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"

// FocusTarget identifies which widget currently holds keyboard focus.
type FocusTarget int

const (
	FocusBody     FocusTarget = iota // nothing focused
	FocusProducts                    // add-item form: product select
	FocusQty                         // add-item form: quantity input
	FocusMethod                      // pay form: method select
	FocusAmount                      // pay form: amount input
	FocusReason                      // cancel form: reason input
	FocusItems                       // sale items table
)

// tabOrder is the forward Tab order of the focusable widgets.
var tabOrder = []FocusTarget{FocusProducts, FocusQty, FocusMethod, FocusAmount, FocusReason, FocusItems}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusBody:
		return "body"
	case FocusProducts:
		return "products"
	case FocusQty:
		return "qty"
	case FocusMethod:
		return "method"
	case FocusAmount:
		return "amount"
	case FocusReason:
		return "reason"
	case FocusItems:
		return "items"
	default:
		return "unknown"
	}
}

// Kind classifies the widget for the shortcut rules.
func (f FocusTarget) Kind() shortcut.FocusKind {
	switch f {
	case FocusQty, FocusAmount, FocusReason:
		return shortcut.FocusInput
	case FocusProducts, FocusMethod:
		return shortcut.FocusSelect
	case FocusItems:
		return shortcut.FocusOther
	default:
		return shortcut.FocusNone
	}
}

// cycle returns the next (dir > 0) or previous focus target among the
// present ones. With nothing present it returns FocusBody.
func cycle(cur FocusTarget, dir int, present func(FocusTarget) bool) FocusTarget {
	var avail []FocusTarget
	pos := -1
	for _, f := range tabOrder {
		if !present(f) {
			continue
		}
		if f == cur {
			pos = len(avail)
		}
		avail = append(avail, f)
	}
	if len(avail) == 0 {
		return FocusBody
	}
	if pos < 0 {
		if dir > 0 {
			return avail[0]
		}
		return avail[len(avail)-1]
	}
	n := len(avail)
	return avail[((pos+dir)%n+n)%n]
}

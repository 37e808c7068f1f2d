package shortcut

import "github.com/rs/zerolog"

// Action names the rule that handled an event.
type Action int

const (
	ActionNone Action = iota
	ActionOpenSale
	ActionAddItem
	ActionPay
	ActionCancel
)

// String returns the human-readable name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionOpenSale:
		return "open_sale"
	case ActionAddItem:
		return "add_item"
	case ActionPay:
		return "pay"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Dispatcher applies the point-of-sale shortcut rules to key events.
// The zero value is ready to use and logs nothing.
type Dispatcher struct {
	Log zerolog.Logger
}

// NewDispatcher returns a Dispatcher that logs handled events to log.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{Log: log}
}

// Handle evaluates ev against v and performs at most one action.
//
// F2 opens a sale whenever the open-sale control is on screen. The remaining
// shortcuts only apply while the location carries a non-empty sale_id: Enter
// submits the add-item form unless an input or select has focus, F8 clicks
// pay and F9 clicks cancel. Missing elements make the shortcut a no-op.
func (d *Dispatcher) Handle(v View, ev *Event) Action {
	if v == nil || ev == nil {
		return ActionNone
	}

	if ev.Code == CodeF2 {
		if c := v.OpenSaleControl(); c != nil {
			ev.PreventDefault()
			c.Click()
			return d.done(ev, ActionOpenSale)
		}
	}

	if ActiveSale(v.Location()) == "" {
		return ActionNone
	}

	switch ev.Code {
	case CodeEnter:
		f := v.AddItemForm()
		if f == nil || v.Focused().capturesEnter() {
			return ActionNone
		}
		ev.PreventDefault()
		f.Submit()
		return d.done(ev, ActionAddItem)
	case CodeF8:
		if c := v.PayControl(); c != nil {
			ev.PreventDefault()
			c.Click()
			return d.done(ev, ActionPay)
		}
	case CodeF9:
		if c := v.CancelControl(); c != nil {
			ev.PreventDefault()
			c.Click()
			return d.done(ev, ActionCancel)
		}
	}
	return ActionNone
}

func (d *Dispatcher) done(ev *Event, a Action) Action {
	d.Log.Debug().Str("key", string(ev.Code)).Str("action", a.String()).Msg("shortcut")
	return a
}

// Bind registers a single listener on doc that resolves the current view and
// handles each event. The returned function removes the listener; call it when
// the view is torn down.
func (d *Dispatcher) Bind(doc *Document, resolve func() View) (unbind func()) {
	return doc.AddListener(func(ev *Event) {
		d.Handle(resolve(), ev)
	})
}

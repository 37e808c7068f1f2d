package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/store"
)

// tickMsg is sent every second for the clock.
type tickMsg time.Time

// saleResultMsg carries the outcome of a service command.
type saleResultMsg struct {
	action shortcut.Action // ActionNone for item removal
	id     int             // sale the command targeted; 0 for open
	sale   *sale.Sale
	err    error
}

// sessionLoadedMsg carries refreshed session totals from the journal.
type sessionLoadedMsg struct {
	summary store.SessionSummary
	err     error
}

// SaleEventMsg wraps a sale event for the activity feed. Hooks run under the
// service lock, so send it from a new goroutine: go p.Send(SaleEventMsg(ev)).
type SaleEventMsg sale.Event

// CatalogReloadedMsg tells the screen the product catalog changed on disk.
type CatalogReloadedMsg struct {
	Products int
	Err      error
}

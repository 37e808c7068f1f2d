// Package store persists sale events to an append-only JSONL journal and
// provides indexed read-back per sale. One journal file is created per
// register session; Replay folds every session in a directory back into the
// latest snapshot of each sale.
package store

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// Writer persists sale events to durable storage.
type Writer interface {
	Append(ev sale.Event) error
	Close() error
}

// Reader retrieves journaled sale data for the current session.
type Reader interface {
	Sales() ([]SaleSummary, error)
	SaleLog(id int) ([]sale.Event, error)
	SessionSummary() (SessionSummary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// SaleSummary is the latest known state of one sale in the session.
type SaleSummary struct {
	ID     int
	Status sale.Status
	Items  int
	Total  sale.Money
	Events int
	LastAt time.Time
}

// SessionSummary summarises the current session.
type SessionSummary struct {
	SessionID string
	StartedAt time.Time
	Sales     int
	Completed int
	Canceled  int
	Revenue   sale.Money
}

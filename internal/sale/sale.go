// Package sale implements the point-of-sale sale lifecycle: opening a sale,
// adding and removing items, taking payment and canceling.
package sale

import (
	"errors"
	"time"
)

// Sentinel errors returned (wrapped) by Service operations.
var (
	ErrNotFound  = errors.New("not found")
	ErrNotOpen   = errors.New("sale is not open")
	ErrEmpty     = errors.New("sale has no items")
	ErrInvalid   = errors.New("invalid input")
	ErrForbidden = errors.New("permission denied")
)

// Status is the lifecycle state of a sale.
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Label returns a short uppercase label for the status.
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Method is a payment method.
type Method string

const (
	MethodCash  Method = "cash"
	MethodCard  Method = "card"
	MethodPix   Method = "pix"
	MethodMixed Method = "mixed"
)

// Methods lists the accepted payment methods in display order.
var Methods = []Method{MethodCash, MethodCard, MethodPix, MethodMixed}

// Valid reports whether m is an accepted payment method.
func (m Method) Valid() bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

// Role is an operator role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStock    Role = "stock"
	RoleOperator Role = "operator"
)

// canSell lists the roles allowed to open sales.
var canSell = []Role{RoleAdmin, RoleManager, RoleOperator}

// Operator identifies who is working the register.
type Operator struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Item is one line of a sale.
type Item struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Qty       Quantity `json:"qty"`
	UnitPrice Money    `json:"unit_price"`
	Discount  Money    `json:"discount"`
	Promo     string   `json:"promo,omitempty"`
	Total     Money    `json:"total"`
}

// Gross returns the item value before discount.
func (it Item) Gross() Money {
	return it.UnitPrice.Times(it.Qty)
}

// Sale is a snapshot of a sale.
type Sale struct {
	ID       int       `json:"id"`
	Status   Status    `json:"status"`
	Operator Operator  `json:"operator"`
	Items    []Item    `json:"items"`
	Subtotal Money     `json:"subtotal"`
	Discount Money     `json:"discount"`
	Total    Money     `json:"total"`
	Method   Method    `json:"method,omitempty"`
	Paid     Money     `json:"paid"`
	Change   Money     `json:"change"`
	Reason   string    `json:"reason,omitempty"`
	OpenedAt time.Time `json:"opened_at"`
	ClosedAt time.Time `json:"closed_at,omitempty"`
}

// Clone returns a deep copy of s.
func (s *Sale) Clone() *Sale {
	c := *s
	c.Items = make([]Item, len(s.Items))
	copy(c.Items, s.Items)
	return &c
}

// EventKind identifies what happened to a sale.
type EventKind string

const (
	EventOpened      EventKind = "opened"
	EventItemAdded   EventKind = "item_added"
	EventItemRemoved EventKind = "item_removed"
	EventPaid        EventKind = "paid"
	EventCanceled    EventKind = "canceled"
)

// MoveKind identifies why stock moved.
type MoveKind string

const (
	MoveSaleOut MoveKind = "sale_out"
	MoveReturn  MoveKind = "return"
)

// StockMove is the stock effect of one sale item. Qty is negative when
// goods leave the store.
type StockMove struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Kind      MoveKind `json:"kind"`
	Qty       Quantity `json:"qty"`
	SaleID    int      `json:"sale_id"`
	Reason    string   `json:"reason,omitempty"`
}

// Event records one change to a sale together with the resulting snapshot.
// Paid events carry a sale_out move per item; canceling a completed sale
// carries the matching returns.
type Event struct {
	Kind      EventKind   `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`
	SaleID    int         `json:"sale_id"`
	Sale      Sale        `json:"sale"`
	Message   string      `json:"message,omitempty"`
	Moves     []StockMove `json:"moves,omitempty"`
}

package sale

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCancelReason is recorded when a sale is canceled without a reason.
const DefaultCancelReason = "Cancelamento"

// maxReasonLen bounds the stored cancel reason.
const maxReasonLen = 200

// Product is the catalog view the service needs to price an item.
type Product struct {
	ID     string
	Name   string
	Price  Money
	Active bool
}

// Catalog resolves products by id.
type Catalog interface {
	Lookup(id string) (Product, bool)
}

// Journal persists sale events. *store.JSONL satisfies this interface.
type Journal interface {
	Append(ev Event) error
}

// Hook observes committed events. Hooks must not block.
type Hook func(ev Event)

// Service owns the in-memory sale registry. Every mutation is journaled
// before it becomes visible; a journal failure leaves the sale unchanged.
type Service struct {
	mu      sync.Mutex
	sales   map[int]*Sale
	nextID  int
	catalog Catalog
	journal Journal
	promos  []Promo
	hooks   []Hook
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPromos sets the promotions considered when pricing items.
func WithPromos(promos []Promo) Option {
	return func(s *Service) { s.promos = append([]Promo(nil), promos...) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger for service failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithHook registers a hook called after each committed event.
func WithHook(h Hook) Option {
	return func(s *Service) { s.hooks = append(s.hooks, h) }
}

// NewService creates a Service. journal may be nil for an in-memory register.
func NewService(catalog Catalog, journal Journal, opts ...Option) *Service {
	s := &Service{
		sales:   make(map[int]*Sale),
		catalog: catalog,
		journal: journal,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads previously journaled sales so ids keep increasing.
func (s *Service) Restore(sales []*Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range sales {
		s.sales[sl.ID] = sl.Clone()
		if sl.ID > s.nextID {
			s.nextID = sl.ID
		}
	}
}

// Open starts a new sale for op.
func (s *Service) Open(ctx context.Context, op Operator) (*Sale, error) {
	if !allowed(op.Role, canSell) {
		return nil, s.fail("open", fmt.Errorf("sale: open: role %q: %w", op.Role, ErrForbidden))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sl := &Sale{
		ID:       s.nextID + 1,
		Status:   StatusOpen,
		Operator: op,
		Items:    []Item{},
		OpenedAt: s.now(),
	}
	if err := s.commit(ctx, EventOpened, sl, fmt.Sprintf("Sale %d opened by %s", sl.ID, op.Name)); err != nil {
		return nil, err
	}
	s.nextID = sl.ID
	return sl.Clone(), nil
}

// AddItem prices qty of productID and appends it to the open sale id.
func (s *Service) AddItem(ctx context.Context, id int, productID string, qty Quantity) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.openSale("add item", id)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, s.fail("add item", fmt.Errorf("sale: add item: quantity must be positive: %w", ErrInvalid))
	}
	if qty > MaxQuantity {
		return nil, s.fail("add item", fmt.Errorf("sale: add item: quantity %s above %s: %w", qty, MaxQuantity, ErrInvalid))
	}
	p, ok := s.lookup(productID)
	if !ok || !p.Active {
		return nil, s.fail("add item", fmt.Errorf("sale: add item: product %q: %w", productID, ErrNotFound))
	}

	it := price(p, qty, s.promos, s.now())
	if it.Gross() > MaxMoney || cur.Subtotal+it.Gross() > MaxMoney {
		return nil, s.fail("add item", fmt.Errorf("sale: add item: total above %s: %w", MaxMoney, ErrInvalid))
	}

	next := cur.Clone()
	next.Items = append(next.Items, it)
	next.Subtotal += it.Gross()
	next.Discount += it.Discount
	next.Total += it.Total

	msg := fmt.Sprintf("Sale %d: %s × %s = %s", id, qty, p.Name, it.Total)
	if err := s.commit(ctx, EventItemAdded, next, msg); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// RemoveItem drops the item at index from the open sale id.
func (s *Service) RemoveItem(ctx context.Context, id int, index int) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.openSale("remove item", id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cur.Items) {
		return nil, s.fail("remove item", fmt.Errorf("sale: remove item: index %d: %w", index, ErrNotFound))
	}

	next := cur.Clone()
	it := next.Items[index]
	next.Items = append(next.Items[:index], next.Items[index+1:]...)
	next.Subtotal -= it.Gross()
	next.Discount -= it.Discount
	next.Total -= it.Total

	if err := s.commit(ctx, EventItemRemoved, next, fmt.Sprintf("Sale %d: removed %s", id, it.Name)); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Pay completes the open sale id with method, recording change for amount.
func (s *Service) Pay(ctx context.Context, id int, method Method, amount Money) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.openSale("pay", id)
	if err != nil {
		return nil, err
	}
	if len(cur.Items) == 0 {
		return nil, s.fail("pay", fmt.Errorf("sale: pay %d: %w", id, ErrEmpty))
	}
	if !method.Valid() {
		return nil, s.fail("pay", fmt.Errorf("sale: pay: method %q: %w", method, ErrInvalid))
	}
	if amount < 0 {
		return nil, s.fail("pay", fmt.Errorf("sale: pay: negative amount: %w", ErrInvalid))
	}

	next := cur.Clone()
	next.Status = StatusCompleted
	next.Method = method
	next.Paid = amount
	next.Change = amount - next.Total
	if next.Change < 0 {
		next.Change = 0
	}
	next.ClosedAt = s.now()

	msg := fmt.Sprintf("Sale %d completed: %s via %s", id, next.Total, method)
	moves := stockMoves(next, MoveSaleOut, "")
	if err := s.commit(ctx, EventPaid, next, msg, moves...); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Cancel cancels sale id, which must be open or completed. Canceling a
// completed sale returns its items to stock.
func (s *Service) Cancel(ctx context.Context, id int, reason string) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sales[id]
	if !ok {
		return nil, s.fail("cancel", fmt.Errorf("sale: cancel %d: %w", id, ErrNotFound))
	}
	if cur.Status != StatusOpen && cur.Status != StatusCompleted {
		return nil, s.fail("cancel", fmt.Errorf("sale: cancel %d (%s): %w", id, cur.Status, ErrNotOpen))
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}
	if r := []rune(reason); len(r) > maxReasonLen {
		reason = string(r[:maxReasonLen])
	}

	next := cur.Clone()
	next.Status = StatusCanceled
	next.Reason = reason
	next.ClosedAt = s.now()

	var moves []StockMove
	if cur.Status == StatusCompleted {
		moves = stockMoves(next, MoveReturn, reason)
	}
	if err := s.commit(ctx, EventCanceled, next, fmt.Sprintf("Sale %d canceled: %s", id, reason), moves...); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Get returns a copy of sale id.
func (s *Service) Get(id int) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale: get %d: %w", id, ErrNotFound)
	}
	return sl.Clone(), nil
}

// List returns copies of all sales ordered by id.
func (s *Service) List() []*Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Sale, 0, len(s.sales))
	for _, sl := range s.sales {
		out = append(out, sl.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// openSale returns the stored sale id if it is open. Caller holds s.mu.
func (s *Service) openSale(op string, id int) (*Sale, error) {
	cur, ok := s.sales[id]
	if !ok {
		return nil, s.fail(op, fmt.Errorf("sale: %s: sale %d: %w", op, id, ErrNotFound))
	}
	if cur.Status != StatusOpen {
		return nil, s.fail(op, fmt.Errorf("sale: %s: sale %d is %s: %w", op, id, cur.Status, ErrNotOpen))
	}
	return cur, nil
}

func (s *Service) lookup(id string) (Product, bool) {
	if s.catalog == nil {
		return Product{}, false
	}
	return s.catalog.Lookup(id)
}

// commit journals the change and then publishes next. Caller holds s.mu.
func (s *Service) commit(ctx context.Context, kind EventKind, next *Sale, msg string, moves ...StockMove) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sale: %s: %w", kind, err)
	}
	ev := Event{
		Kind:      kind,
		Timestamp: s.now(),
		SaleID:    next.ID,
		Sale:      *next.Clone(),
		Message:   msg,
		Moves:     moves,
	}
	if s.journal != nil {
		if err := s.journal.Append(ev); err != nil {
			return s.fail(string(kind), fmt.Errorf("sale: journal %s: %w", kind, err))
		}
	}
	s.sales[next.ID] = next
	for _, h := range s.hooks {
		h(ev)
	}
	return nil
}

// stockMoves returns one move of kind per item of sl.
func stockMoves(sl *Sale, kind MoveKind, reason string) []StockMove {
	moves := make([]StockMove, 0, len(sl.Items))
	for _, it := range sl.Items {
		qty := it.Qty
		if kind == MoveSaleOut {
			qty = -qty
		}
		moves = append(moves, StockMove{
			ProductID: it.ProductID,
			Name:      it.Name,
			Kind:      kind,
			Qty:       qty,
			SaleID:    sl.ID,
			Reason:    reason,
		})
	}
	return moves
}

func (s *Service) fail(op string, err error) error {
	s.log.Warn().Err(err).Str("op", op).Msg("sale operation rejected")
	return err
}

func allowed(r Role, roles []Role) bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}

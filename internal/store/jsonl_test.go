package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/store"
)

// Compile-time checks: *JSONL implements Store and sale.Journal.
var (
	_ store.Store  = (*store.JSONL)(nil)
	_ sale.Journal = (*store.JSONL)(nil)
)

func newStore(t *testing.T, dir string) *store.JSONL {
	t.Helper()
	s, err := store.NewJSONL(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func event(kind sale.EventKind, id int, status sale.Status, total sale.Money, items int) sale.Event {
	s := sale.Sale{ID: id, Status: status, Total: total}
	for i := 0; i < items; i++ {
		s.Items = append(s.Items, sale.Item{ProductID: fmt.Sprintf("p%d", i), Qty: sale.One, Total: total / sale.Money(items)})
	}
	return sale.Event{Kind: kind, Timestamp: time.Now(), SaleID: id, Sale: s}
}

func TestNewJSONL_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	newStore(t, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in dir, got %d", len(entries))
	}
	if ext := filepath.Ext(entries[0].Name()); ext != ".jsonl" {
		t.Errorf("expected .jsonl extension, got %q", ext)
	}
}

func TestNewJSONL_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "journal")
	newStore(t, dir)

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected dir to exist after NewJSONL: %v", err)
	}
}

func TestAppendAndSaleLog(t *testing.T) {
	s := newStore(t, t.TempDir())

	evs := []sale.Event{
		event(sale.EventOpened, 1, sale.StatusOpen, 0, 0),
		event(sale.EventOpened, 2, sale.StatusOpen, 0, 0),
		event(sale.EventItemAdded, 1, sale.StatusOpen, 500, 1),
		event(sale.EventPaid, 1, sale.StatusCompleted, 500, 1),
	}
	for _, e := range evs {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.SaleLog(1)
	if err != nil {
		t.Fatalf("SaleLog(1): %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	wantKinds := []sale.EventKind{sale.EventOpened, sale.EventItemAdded, sale.EventPaid}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("got[%d].Kind = %q, want %q", i, got[i].Kind, k)
		}
	}
	if got[2].Sale.Total != 500 {
		t.Errorf("paid snapshot total = %v, want 5.00", got[2].Sale.Total)
	}

	got2, err := s.SaleLog(2)
	if err != nil {
		t.Fatalf("SaleLog(2): %v", err)
	}
	if len(got2) != 1 {
		t.Errorf("expected 1 event for sale 2, got %d", len(got2))
	}
}

func TestSaleLog_NotFound(t *testing.T) {
	s := newStore(t, t.TempDir())
	if _, err := s.SaleLog(99); err == nil {
		t.Error("expected error for unknown sale")
	}
}

func TestSales_LatestState(t *testing.T) {
	s := newStore(t, t.TempDir())
	for _, e := range []sale.Event{
		event(sale.EventOpened, 3, sale.StatusOpen, 0, 0),
		event(sale.EventOpened, 4, sale.StatusOpen, 0, 0),
		event(sale.EventItemAdded, 3, sale.StatusOpen, 1000, 2),
		event(sale.EventCanceled, 4, sale.StatusCanceled, 0, 0),
	} {
		if err := s.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	sales, err := s.Sales()
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 2 {
		t.Fatalf("len = %d, want 2", len(sales))
	}
	if sales[0].ID != 3 || sales[0].Items != 2 || sales[0].Total != 1000 || sales[0].Events != 2 {
		t.Errorf("sales[0] = %+v", sales[0])
	}
	if sales[1].ID != 4 || sales[1].Status != sale.StatusCanceled {
		t.Errorf("sales[1] = %+v", sales[1])
	}
}

func TestSessionSummary(t *testing.T) {
	s := newStore(t, t.TempDir())
	for _, e := range []sale.Event{
		event(sale.EventPaid, 1, sale.StatusCompleted, 1250, 1),
		event(sale.EventPaid, 2, sale.StatusCompleted, 750, 1),
		event(sale.EventCanceled, 3, sale.StatusCanceled, 900, 1),
		event(sale.EventOpened, 4, sale.StatusOpen, 0, 0),
	} {
		if err := s.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := s.SessionSummary()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Sales != 4 || sum.Completed != 2 || sum.Canceled != 1 {
		t.Errorf("summary counts = %+v", sum)
	}
	if sum.Revenue != 2000 {
		t.Errorf("Revenue = %v, want 20.00", sum.Revenue)
	}
	if sum.SessionID == "" || sum.StartedAt.IsZero() {
		t.Errorf("session identity missing: %+v", sum)
	}
}

func TestReplay_AcrossSessions(t *testing.T) {
	dir := t.TempDir()

	// Older session, written by hand so its name sorts first.
	oldLine := `{"kind":"opened","timestamp":"2026-03-09T10:00:00Z","sale_id":1,"sale":{"id":1,"status":"open","operator":{"name":"ana","role":"operator"},"items":[],"subtotal":0,"discount":0,"total":0,"paid":0,"change":0,"opened_at":"2026-03-09T10:00:00Z","closed_at":"0001-01-01T00:00:00Z"}}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "1000-1.jsonl"), []byte(oldLine+"not json\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := newStore(t, dir)
	for _, e := range []sale.Event{
		event(sale.EventPaid, 1, sale.StatusCompleted, 300, 1),
		event(sale.EventOpened, 2, sale.StatusOpen, 0, 0),
	} {
		if err := s.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	sales, err := store.Replay(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("len = %d, want 2", len(sales))
	}
	if sales[0].ID != 1 || sales[0].Status != sale.StatusCompleted || sales[0].Total != 300 {
		t.Errorf("sale 1 = %+v, want latest (completed) snapshot", sales[0])
	}
	if sales[1].ID != 2 || sales[1].Status != sale.StatusOpen {
		t.Errorf("sale 2 = %+v", sales[1])
	}
}

func TestReplay_MissingDir(t *testing.T) {
	sales, err := store.Replay(filepath.Join(t.TempDir(), "nope"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("len = %d, want 0", len(sales))
	}
}

func TestEnforceRetention(t *testing.T) {
	createFiles := func(t *testing.T, dir string, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("%d-%d.jsonl", 1000+i, i)
			if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	countFiles := func(t *testing.T, dir string) []string {
		t.Helper()
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}

	tests := []struct {
		name     string
		files    int
		keep     int
		want     int
		wantOld  string
		wantGone string
	}{
		{"under limit", 3, 5, 3, "1000-0.jsonl", ""},
		{"at limit", 5, 5, 5, "1000-0.jsonl", ""},
		{"over limit", 7, 5, 5, "1002-2.jsonl", "1001-1.jsonl"},
		{"zero keeps all", 4, 0, 4, "1000-0.jsonl", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFiles(t, dir, tt.files)
			if err := store.EnforceRetention(dir, tt.keep); err != nil {
				t.Fatalf("EnforceRetention: %v", err)
			}
			names := countFiles(t, dir)
			if len(names) != tt.want {
				t.Fatalf("files = %d, want %d", len(names), tt.want)
			}
			if names[0] != tt.wantOld {
				t.Errorf("oldest kept = %q, want %q", names[0], tt.wantOld)
			}
			if tt.wantGone != "" {
				if _, err := os.Stat(filepath.Join(dir, tt.wantGone)); !os.IsNotExist(err) {
					t.Errorf("%s should have been removed", tt.wantGone)
				}
			}
		})
	}
}

func TestEnforceRetention_MissingDir(t *testing.T) {
	if err := store.EnforceRetention(filepath.Join(t.TempDir(), "nope"), 3); err != nil {
		t.Errorf("EnforceRetention on missing dir: %v", err)
	}
}

// writeSession writes events to a journal file named name in dir.
func writeSession(t *testing.T, dir, name string, events ...sale.Event) {
	t.Helper()
	var data []byte
	for _, ev := range events {
		line, err := json.Marshal(ev)
		if err != nil {
			t.Fatal(err)
		}
		data = append(append(data, line...), '\n')
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEnforceRetention_KeepsHighestSaleID(t *testing.T) {
	tests := []struct {
		name     string
		sessions [][]sale.Event
		keep     int
		wantKept []string
		wantGone []string
	}{
		{
			name: "idle session after sales",
			sessions: [][]sale.Event{
				{event(sale.EventOpened, 1, sale.StatusOpen, 0, 0), event(sale.EventPaid, 1, sale.StatusCompleted, 500, 1)},
				nil,
				nil,
			},
			keep:     1,
			wantKept: []string{"1000-0.jsonl", "1002-2.jsonl"},
			wantGone: []string{"1001-1.jsonl"},
		},
		{
			name: "newest kept file holds the highest id",
			sessions: [][]sale.Event{
				{event(sale.EventOpened, 1, sale.StatusOpen, 0, 0)},
				{event(sale.EventOpened, 2, sale.StatusOpen, 0, 0)},
			},
			keep:     1,
			wantKept: []string{"1001-1.jsonl"},
			wantGone: []string{"1000-0.jsonl"},
		},
		{
			name: "later session touches an older sale",
			sessions: [][]sale.Event{
				{event(sale.EventOpened, 1, sale.StatusOpen, 0, 0)},
				{event(sale.EventOpened, 2, sale.StatusOpen, 0, 0)},
				{event(sale.EventCanceled, 1, sale.StatusCanceled, 0, 0)},
			},
			keep:     1,
			wantKept: []string{"1001-1.jsonl", "1002-2.jsonl"},
			wantGone: []string{"1000-0.jsonl"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i, events := range tt.sessions {
				writeSession(t, dir, fmt.Sprintf("%d-%d.jsonl", 1000+i, i), events...)
			}
			if err := store.EnforceRetention(dir, tt.keep); err != nil {
				t.Fatalf("EnforceRetention: %v", err)
			}
			for _, name := range tt.wantKept {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("%s should have been kept: %v", name, err)
				}
			}
			for _, name := range tt.wantGone {
				if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
					t.Errorf("%s should have been removed", name)
				}
			}
		})
	}
}

// Three register sessions with retention keeping one file: the first sells,
// the second is idle, the third must continue numbering after the first.
func TestRetention_SaleIDsSurviveIdleSession(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	op := sale.Operator{Name: "ana", Role: sale.RoleOperator}

	boot := func(t *testing.T, name string) *sale.Service {
		t.Helper()
		sales, err := store.Replay(dir, zerolog.Nop())
		if err != nil {
			t.Fatalf("Replay: %v", err)
		}
		writeSession(t, dir, name)
		if err := store.EnforceRetention(dir, 1); err != nil {
			t.Fatalf("EnforceRetention: %v", err)
		}
		svc := sale.NewService(nil, nil)
		svc.Restore(sales)
		return svc
	}

	first := boot(t, "1000-1.jsonl")
	s, err := first.Open(ctx, op)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.ID != 1 {
		t.Fatalf("first session sale id = %d, want 1", s.ID)
	}
	writeSession(t, dir, "1000-1.jsonl", sale.Event{Kind: sale.EventOpened, Timestamp: time.Now(), SaleID: s.ID, Sale: *s})

	boot(t, "1001-1.jsonl")

	third := boot(t, "1002-1.jsonl")
	s, err = third.Open(ctx, op)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.ID != 2 {
		t.Errorf("third session sale id = %d, want 2", s.ID)
	}
}

func TestStockMoves_AcrossSessions(t *testing.T) {
	dir := t.TempDir()
	out := sale.StockMove{ProductID: "arroz", Name: "Arroz", Kind: sale.MoveSaleOut, Qty: -sale.One, SaleID: 1}
	back := sale.StockMove{ProductID: "arroz", Name: "Arroz", Kind: sale.MoveReturn, Qty: sale.One, SaleID: 1}

	paid := event(sale.EventPaid, 1, sale.StatusCompleted, 500, 1)
	paid.Moves = []sale.StockMove{out}
	writeSession(t, dir, "1000-1.jsonl", event(sale.EventOpened, 1, sale.StatusOpen, 0, 0), paid)

	s := newStore(t, dir)
	canceled := event(sale.EventCanceled, 1, sale.StatusCanceled, 500, 1)
	canceled.Moves = []sale.StockMove{back}
	if err := s.Append(canceled); err != nil {
		t.Fatal(err)
	}

	moves, err := store.StockMoves(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("StockMoves: %v", err)
	}
	if len(moves) != 2 || moves[0] != out || moves[1] != back {
		t.Errorf("moves = %+v, want sale_out then return", moves)
	}

	if moves, err := store.StockMoves(filepath.Join(dir, "nope"), zerolog.Nop()); err != nil || len(moves) != 0 {
		t.Errorf("missing dir: %v, %v", moves, err)
	}
}

package sale

import (
	"testing"
	"time"
)

func TestDailyTotals(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }
	sales := []*Sale{
		{ID: 1, Status: StatusCompleted, Total: 1000, OpenedAt: day(9, 10)},
		{ID: 2, Status: StatusCompleted, Total: 550, OpenedAt: day(9, 18)},
		{ID: 3, Status: StatusCanceled, Total: 9999, OpenedAt: day(9, 12)},
		{ID: 4, Status: StatusOpen, Total: 100, OpenedAt: day(10, 9)},
		{ID: 5, Status: StatusCompleted, Total: 200, OpenedAt: day(10, 9)},
		{ID: 6, Status: StatusCompleted, Total: 300, OpenedAt: day(1, 9)}, // before range
	}

	got := DailyTotals(sales, day(3, 0), day(11, 0), time.UTC)
	want := []DayTotal{
		{Day: "2026-03-09", Total: 1550, Count: 2},
		{Day: "2026-03-10", Total: 200, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopProducts(t *testing.T) {
	sales := []*Sale{
		{Status: StatusCompleted, Items: []Item{
			{ProductID: "a", Name: "A", Qty: One, Total: 100},
			{ProductID: "b", Name: "B", Qty: 3 * One, Total: 300},
		}},
		{Status: StatusCompleted, Items: []Item{
			{ProductID: "a", Name: "A", Qty: One, Total: 100},
			{ProductID: "c", Name: "C", Qty: One, Total: 50},
		}},
		{Status: StatusCanceled, Items: []Item{
			{ProductID: "c", Name: "C", Qty: 10 * One, Total: 500},
		}},
	}

	got := TopProducts(sales, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ProductID != "b" || got[0].Qty != 3*One {
		t.Errorf("first = %+v, want b ×3", got[0])
	}
	if got[1].ProductID != "a" || got[1].Revenue != 200 {
		t.Errorf("second = %+v, want a revenue 2.00", got[1])
	}

	if all := TopProducts(sales, 0); len(all) != 3 {
		t.Errorf("unlimited len = %d, want 3", len(all))
	}
}

func TestStockBalance(t *testing.T) {
	moves := []StockMove{
		{ProductID: "b", Name: "B", Kind: MoveSaleOut, Qty: -2 * One, SaleID: 1},
		{ProductID: "a", Name: "A", Kind: MoveSaleOut, Qty: -One, SaleID: 1},
		{ProductID: "b", Name: "B", Kind: MoveSaleOut, Qty: -5000, SaleID: 2},
		{ProductID: "b", Name: "B", Kind: MoveReturn, Qty: 2 * One, SaleID: 1, Reason: "troca"},
	}

	got := StockBalance(moves)
	want := []ProductStock{
		{ProductID: "a", Name: "A", Out: One, Net: -One},
		{ProductID: "b", Name: "B", Out: 25000, Returned: 2 * One, Net: -5000},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d products, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("product %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if empty := StockBalance(nil); len(empty) != 0 {
		t.Errorf("StockBalance(nil) = %+v", empty)
	}
}

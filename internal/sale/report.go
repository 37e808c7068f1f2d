package sale

import (
	"sort"
	"time"
)

// DayTotal aggregates completed sales for one calendar day.
type DayTotal struct {
	Day   string // YYYY-MM-DD
	Total Money
	Count int
}

// DailyTotals groups completed sales opened in [from, to) by day in loc.
func DailyTotals(sales []*Sale, from, to time.Time, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = time.Local
	}
	byDay := make(map[string]*DayTotal)
	for _, s := range sales {
		if s.Status != StatusCompleted {
			continue
		}
		if s.OpenedAt.Before(from) || !s.OpenedAt.Before(to) {
			continue
		}
		day := s.OpenedAt.In(loc).Format("2006-01-02")
		dt, ok := byDay[day]
		if !ok {
			dt = &DayTotal{Day: day}
			byDay[day] = dt
		}
		dt.Total += s.Total
		dt.Count++
	}

	out := make([]DayTotal, 0, len(byDay))
	for _, dt := range byDay {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// ProductTotal aggregates quantity and revenue per product.
type ProductTotal struct {
	ProductID string
	Name      string
	Qty       Quantity
	Revenue   Money
}

// TopProducts ranks products in completed sales by quantity sold.
// limit <= 0 returns every product.
func TopProducts(sales []*Sale, limit int) []ProductTotal {
	byID := make(map[string]*ProductTotal)
	for _, s := range sales {
		if s.Status != StatusCompleted {
			continue
		}
		for _, it := range s.Items {
			pt, ok := byID[it.ProductID]
			if !ok {
				pt = &ProductTotal{ProductID: it.ProductID, Name: it.Name}
				byID[it.ProductID] = pt
			}
			pt.Qty += it.Qty
			pt.Revenue += it.Total
		}
	}

	out := make([]ProductTotal, 0, len(byID))
	for _, pt := range byID {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ProductStock is the net stock movement of one product.
type ProductStock struct {
	ProductID string
	Name      string
	Out       Quantity // sold, as a positive amount
	Returned  Quantity
	Net       Quantity // Returned - Out
}

// StockBalance sums moves per product, ordered by product id.
func StockBalance(moves []StockMove) []ProductStock {
	byID := make(map[string]*ProductStock)
	for _, mv := range moves {
		ps, ok := byID[mv.ProductID]
		if !ok {
			ps = &ProductStock{ProductID: mv.ProductID, Name: mv.Name}
			byID[mv.ProductID] = ps
		}
		switch mv.Kind {
		case MoveSaleOut:
			ps.Out -= mv.Qty
		case MoveReturn:
			ps.Returned += mv.Qty
		}
		ps.Net += mv.Qty
	}

	out := make([]ProductStock, 0, len(byID))
	for _, ps := range byID {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

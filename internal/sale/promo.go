package sale

import (
	"sort"
	"time"
)

// Promo is a store-wide percentage discount valid within a time window.
// Lower Priority values win.
type Promo struct {
	Name     string
	Percent  float64
	Priority int
	Starts   time.Time
	Ends     time.Time // zero = open-ended
	Active   bool
}

// validAt reports whether p applies at t.
func (p Promo) validAt(t time.Time) bool {
	if !p.Active || p.Percent <= 0 {
		return false
	}
	if !p.Starts.IsZero() && p.Starts.After(t) {
		return false
	}
	return p.Ends.IsZero() || !p.Ends.Before(t)
}

// bestPromo returns the highest-priority promo valid at t.
func bestPromo(promos []Promo, t time.Time) (Promo, bool) {
	valid := make([]Promo, 0, len(promos))
	for _, p := range promos {
		if p.validAt(t) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return Promo{}, false
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Priority < valid[j].Priority })
	return valid[0], true
}

// price computes the unit price, discount and total for qty of product at t.
func price(p Product, qty Quantity, promos []Promo, t time.Time) Item {
	it := Item{
		ProductID: p.ID,
		Name:      p.Name,
		Qty:       qty,
		UnitPrice: p.Price,
	}
	gross := it.Gross()
	if promo, ok := bestPromo(promos, t); ok {
		it.Discount = gross.Percent(promo.Percent)
		it.Promo = promo.Name
	}
	it.Total = gross - it.Discount
	return it
}

package tui

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Flash, Footer Rect
	Products              Rect
	Sale, Activity        Rect
	TooSmall              bool // true when terminal is below the minimum 80×24
}

// Calculate computes the panel layout for a terminal of the given dimensions.
// Returns a Layout with TooSmall=true if width < 80 or height < 24.
//
// Algorithm:
//   - Header: full width, 1 row at top; Flash: 1 row below it
//   - Footer: full width, 1 row at bottom
//   - Products: 35% of width, clamped to [28, 48], full body height
//   - Sale: remaining width × 75% of body height (top-right)
//   - Activity: remaining width × remaining body height (bottom-right)
func Calculate(width, height int) Layout {
	if width < 80 || height < 24 {
		return Layout{TooSmall: true}
	}

	bodyH := height - 3 // header + flash + footer rows

	productsW := width * 35 / 100
	if productsW < 28 {
		productsW = 28
	}
	if productsW > 48 {
		productsW = 48
	}
	rightW := width - productsW

	saleH := bodyH * 75 / 100
	activityH := bodyH - saleH

	return Layout{
		Header:   Rect{X: 0, Y: 0, Width: width, Height: 1},
		Flash:    Rect{X: 0, Y: 1, Width: width, Height: 1},
		Footer:   Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Products: Rect{X: 0, Y: 2, Width: productsW, Height: bodyH},
		Sale:     Rect{X: productsW, Y: 2, Width: rightW, Height: saleH},
		Activity: Rect{X: productsW, Y: 2 + saleH, Width: rightW, Height: activityH},
		TooSmall: false,
	}
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}

package tui

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		tooSmall  bool
		productsW int
		rightW    int
		bodyH     int
		saleH     int
		activityH int
	}{
		{
			name:  "80x24 minimum viable",
			width: 80, height: 24,
			productsW: 28, // 80*35/100 = 28
			rightW:    52,
			bodyH:     21,
			saleH:     15, // 21*75/100 = 15
			activityH: 6,
		},
		{
			name:  "120x40",
			width: 120, height: 40,
			productsW: 42,
			rightW:    78,
			bodyH:     37,
			saleH:     27,
			activityH: 10,
		},
		{
			name:  "200x60",
			width: 200, height: 60,
			productsW: 48, // 70 clamped to 48
			rightW:    152,
			bodyH:     57,
			saleH:     42,
			activityH: 15,
		},
		{name: "too narrow", width: 79, height: 24, tooSmall: true},
		{name: "too short", width: 80, height: 23, tooSmall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height)
			if l.TooSmall != tt.tooSmall {
				t.Fatalf("TooSmall = %v, want %v", l.TooSmall, tt.tooSmall)
			}
			if tt.tooSmall {
				return
			}
			if l.Products.Width != tt.productsW {
				t.Errorf("Products.Width = %d, want %d", l.Products.Width, tt.productsW)
			}
			if l.Products.Height != tt.bodyH {
				t.Errorf("Products.Height = %d, want %d", l.Products.Height, tt.bodyH)
			}
			if l.Sale.Width != tt.rightW || l.Activity.Width != tt.rightW {
				t.Errorf("right widths = %d/%d, want %d", l.Sale.Width, l.Activity.Width, tt.rightW)
			}
			if l.Sale.Height != tt.saleH {
				t.Errorf("Sale.Height = %d, want %d", l.Sale.Height, tt.saleH)
			}
			if l.Activity.Height != tt.activityH {
				t.Errorf("Activity.Height = %d, want %d", l.Activity.Height, tt.activityH)
			}
			if l.Activity.Y != l.Sale.Y+l.Sale.Height {
				t.Errorf("Activity.Y = %d, want %d", l.Activity.Y, l.Sale.Y+l.Sale.Height)
			}
			if l.Footer.Y != tt.height-1 {
				t.Errorf("Footer.Y = %d, want %d", l.Footer.Y, tt.height-1)
			}
		})
	}
}

func TestInnerDims(t *testing.T) {
	w, h := innerDims(Rect{Width: 30, Height: 10})
	if w != 28 || h != 8 {
		t.Errorf("innerDims = %d×%d, want 28×8", w, h)
	}
	w, h = innerDims(Rect{Width: 1, Height: 0})
	if w != 1 || h != 1 {
		t.Errorf("innerDims clamps to 1×1, got %d×%d", w, h)
	}
}

package tui

import "testing"

func TestFlashIcon(t *testing.T) {
	tests := []struct {
		c    FlashCategory
		want string
	}{
		{FlashInfo, "•"},
		{FlashSuccess, "✔"},
		{FlashWarning, "!"},
		{FlashDanger, "✖"},
	}
	for _, tt := range tests {
		if got := flashIcon(tt.c); got != tt.want {
			t.Errorf("flashIcon(%d) = %q, want %q", tt.c, got, tt.want)
		}
		_ = flashStyle(tt.c).Render("x") // must not panic
	}
}

func TestEventIcon(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"opened", "▶"},
		{"item_added", "+"},
		{"item_removed", "−"},
		{"paid", "$"},
		{"canceled", "✖"},
		{"", "•"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := eventIcon(tt.kind); got != tt.want {
				t.Errorf("eventIcon(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const sampleTOML = `
[[products]]
id = "arroz"
name = "Arroz 5kg"
ean = "789-1234-5678-90-1"
unit = "un"
price = "25.90"

[[products]]
id = "banana"
name = "banana prata"
unit = "KG"
price = "6,49"

[[products]]
id = "velho"
name = "Aveia"
price = "3"
active = false
`

func TestParse(t *testing.T) {
	products, err := Parse([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("len = %d, want 3", len(products))
	}

	arroz := products[0]
	if arroz.EAN != "78912345678901" {
		t.Errorf("EAN = %q, want digits only", arroz.EAN)
	}
	if arroz.Unit != UnitEach || arroz.Price != 2590 || !arroz.Active {
		t.Errorf("arroz = %+v", arroz)
	}
	if products[1].Price != 649 || products[1].Unit != UnitKilo {
		t.Errorf("banana = %+v", products[1])
	}
	if products[2].Active {
		t.Error("velho should be inactive")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"missing id", "[[products]]\nname = \"x\"", "id must not be empty"},
		{"missing name", "[[products]]\nid = \"x\"", "name must not be empty"},
		{"bad unit", "[[products]]\nid = \"x\"\nname = \"x\"\nunit = \"CX\"", "unit must be"},
		{"bad ean", "[[products]]\nid = \"x\"\nname = \"x\"\nean = \"123\"", "invalid EAN"},
		{"bad price", "[[products]]\nid = \"x\"\nname = \"x\"\nprice = \"abc\"", "parse money"},
		{"negative price", "[[products]]\nid = \"x\"\nname = \"x\"\nprice = \"-1\"", "price must be >= 0"},
		{"duplicate", "[[products]]\nid = \"x\"\nname = \"a\"\n[[products]]\nid = \"x\"\nname = \"b\"", "duplicate id"},
		{"unknown key", "[[products]]\nid = \"x\"\nname = \"x\"\ncolour = \"red\"", "unknown keys"},
		{"syntax", "[[products]\n", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestNormalizeEAN(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"7891000100103", "7891000100103", false},
		{"7891 0001-0010 3", "7891000100103", false},
		{"12345678", "12345678", false},
		{"1234567", "", true},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeEAN(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeEAN(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeEAN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChoices(t *testing.T) {
	products, err := Parse([]byte(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	c := New(products)

	got := c.Choices()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 active products", len(got))
	}
	if got[0].ID != "arroz" || got[1].ID != "banana" {
		t.Errorf("order = %s, %s; want arroz, banana (case-insensitive by name)", got[0].ID, got[1].ID)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestChoices_Limit(t *testing.T) {
	products := make([]Product, MaxChoices+20)
	for i := range products {
		products[i] = Product{ID: fmt.Sprintf("p%04d", i), Name: fmt.Sprintf("P%04d", i), Active: true}
	}
	if got := New(products).Choices(); len(got) != MaxChoices {
		t.Errorf("len = %d, want %d", len(got), MaxChoices)
	}
}

func TestLookup(t *testing.T) {
	c := New([]Product{{ID: "a", Name: "A", Price: 150, Active: true}})

	p, ok := c.Lookup("a")
	if !ok || p.Price != 150 || p.Name != "A" || !p.Active {
		t.Errorf("Lookup(a) = %+v, %v", p, ok)
	}
	if _, ok := c.Lookup("b"); ok {
		t.Error("Lookup(b) should miss")
	}
}

func TestLabel(t *testing.T) {
	if got := (Product{Name: "Sal"}).Label(); got != "Sal [sem EAN]" {
		t.Errorf("Label = %q", got)
	}
	if got := (Product{Name: "Sal", EAN: "12345678"}).Label(); got != "Sal [12345678]" {
		t.Errorf("Label = %q", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}
	products, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c := New(products)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, path, zerolog.Nop(), func(_ int, err error) { reloaded <- err })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	updated := "[[products]]\nid = \"cafe\"\nname = \"Café\"\nprice = \"14.90\"\n"
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if _, ok := c.Get("cafe"); !ok {
		t.Error("catalog does not contain reloaded product")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop on cancel")
	}
}

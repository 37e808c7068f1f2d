// Package catalog loads the product catalog from products.toml and keeps it
// current while the register runs.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// MaxChoices bounds the product select list.
const MaxChoices = 500

// nonDigit matches everything that is not part of an EAN.
var nonDigit = regexp.MustCompile(`\D+`)

// Unit is a product's selling unit.
type Unit string

const (
	UnitEach  Unit = "UN"
	UnitKilo  Unit = "KG"
	UnitLiter Unit = "L"
)

// Product is a catalog entry.
type Product struct {
	ID     string
	Name   string
	EAN    string
	SKU    string
	Unit   Unit
	Price  sale.Money
	Active bool
}

// Label returns the text shown in the product select list.
func (p Product) Label() string {
	ean := p.EAN
	if ean == "" {
		ean = "sem EAN"
	}
	return fmt.Sprintf("%s [%s]", p.Name, ean)
}

// file is the on-disk shape of products.toml.
type file struct {
	Products []fileProduct `toml:"products"`
}

type fileProduct struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	EAN    string `toml:"ean"`
	SKU    string `toml:"sku"`
	Unit   string `toml:"unit"`
	Price  string `toml:"price"`
	Active *bool  `toml:"active"`
}

// NormalizeEAN strips non-digits from ean. The result must be empty or have
// 8, 12, 13 or 14 digits.
func NormalizeEAN(ean string) (string, error) {
	digits := nonDigit.ReplaceAllString(ean, "")
	switch len(digits) {
	case 0, 8, 12, 13, 14:
		return digits, nil
	default:
		return "", fmt.Errorf("catalog: invalid EAN %q", ean)
	}
}

// Parse decodes products.toml content into a product list.
func Parse(data []byte) ([]Product, error) {
	var f file
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("catalog: unknown keys: %s", strings.Join(keys, ", "))
	}

	var errs []error
	seen := make(map[string]bool, len(f.Products))
	out := make([]Product, 0, len(f.Products))
	for i, fp := range f.Products {
		p, err := fp.product()
		if err != nil {
			errs = append(errs, fmt.Errorf("products[%d]: %w", i, err))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("products[%d]: duplicate id %q", i, p.ID))
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return out, nil
}

func (fp fileProduct) product() (Product, error) {
	p := Product{
		ID:     strings.TrimSpace(fp.ID),
		Name:   strings.TrimSpace(fp.Name),
		SKU:    strings.TrimSpace(fp.SKU),
		Unit:   Unit(strings.ToUpper(strings.TrimSpace(fp.Unit))),
		Active: fp.Active == nil || *fp.Active,
	}
	if p.ID == "" {
		return p, fmt.Errorf("id must not be empty")
	}
	if p.Name == "" {
		return p, fmt.Errorf("name must not be empty")
	}
	switch p.Unit {
	case "":
		p.Unit = UnitEach
	case UnitEach, UnitKilo, UnitLiter:
	default:
		return p, fmt.Errorf("unit must be UN, KG or L, got %q", fp.Unit)
	}
	ean, err := NormalizeEAN(fp.EAN)
	if err != nil {
		return p, err
	}
	p.EAN = ean
	if fp.Price != "" {
		price, err := sale.ParseMoney(fp.Price)
		if err != nil {
			return p, err
		}
		if price < 0 {
			return p, fmt.Errorf("price must be >= 0")
		}
		p.Price = price
	}
	return p, nil
}

// snapshot is an immutable catalog version.
type snapshot struct {
	byID     map[string]Product
	products []Product
}

func newSnapshot(products []Product) *snapshot {
	s := &snapshot{byID: make(map[string]Product, len(products)), products: products}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

// Catalog is a concurrency-safe product catalog. Readers always observe a
// complete version; Replace swaps versions atomically.
type Catalog struct {
	cur atomic.Pointer[snapshot]
}

// New returns a catalog holding products.
func New(products []Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

// Replace swaps in a new product list.
func (c *Catalog) Replace(products []Product) {
	cp := make([]Product, len(products))
	copy(cp, products)
	c.cur.Store(newSnapshot(cp))
}

// Lookup implements sale.Catalog.
func (c *Catalog) Lookup(id string) (sale.Product, bool) {
	p, ok := c.Get(id)
	if !ok {
		return sale.Product{}, false
	}
	return sale.Product{ID: p.ID, Name: p.Name, Price: p.Price, Active: p.Active}, true
}

// Get returns the product with id.
func (c *Catalog) Get(id string) (Product, bool) {
	s := c.cur.Load()
	if s == nil {
		return Product{}, false
	}
	p, ok := s.byID[id]
	return p, ok
}

// All returns every product in file order.
func (c *Catalog) All() []Product {
	s := c.cur.Load()
	if s == nil {
		return nil
	}
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Choices returns active products sorted by name, at most MaxChoices.
func (c *Catalog) Choices() []Product {
	all := c.All()
	out := all[:0]
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	if len(out) > MaxChoices {
		out = out[:MaxChoices]
	}
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	s := c.cur.Load()
	if s == nil {
		return 0
	}
	return len(s.products)
}

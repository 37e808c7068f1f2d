package tui

import (
	"context"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/catalog"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// SaleService is the part of *sale.Service the POS screen drives.
type SaleService interface {
	Open(ctx context.Context, op sale.Operator) (*sale.Sale, error)
	AddItem(ctx context.Context, id int, productID string, qty sale.Quantity) (*sale.Sale, error)
	RemoveItem(ctx context.Context, id int, index int) (*sale.Sale, error)
	Pay(ctx context.Context, id int, method sale.Method, amount sale.Money) (*sale.Sale, error)
	Cancel(ctx context.Context, id int, reason string) (*sale.Sale, error)
	Get(id int) (*sale.Sale, error)
}

// Products supplies the product select. *catalog.Catalog satisfies it.
type Products interface {
	Choices() []catalog.Product
}

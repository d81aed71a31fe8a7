package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a stock-keeping row. Quantity is a signed count with no floor:
// order creation decrements it without an availability check, so it can go
// negative.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ProductSettings carries the per-product replenishment profile. A product
// without a settings row falls back to a reorder point of 10 and max stock
// of 100 in the alert views.
type ProductSettings struct {
	ID           int              `json:"id"`
	ProductID    int              `json:"product_id"`
	ReorderPoint int              `json:"reorder_point"`
	MaxStock     int              `json:"max_stock"`
	SupplierID   *int             `json:"supplier_id"`
	Category     *string          `json:"category"`
	SKU          *string          `json:"sku"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

// ProductService provides product CRUD and settings management.
type ProductService interface {
	List(ctx context.Context) ([]Product, error)

	// Get returns ErrNotFound when no row matches.
	Get(ctx context.Context, id int) (*Product, error)

	Create(ctx context.Context, name string, quantity int) (*Product, error)

	// Update overwrites name and quantity unconditionally. The quantity is an
	// absolute value, not a delta. A missing id is not an error: the update
	// affects zero rows and the submitted values are echoed back.
	Update(ctx context.Context, id int, name string, quantity int) (*Product, error)

	// Delete is a hard delete with no cascade; orders, sales order items, and
	// settings rows referencing the product are left in place.
	Delete(ctx context.Context, id int) error

	// Upsert Import inserts the row under the given id when it does not exist
	// yet, otherwise overwrites name and quantity. Used by CSV import.
	Import(ctx context.Context, id int, name string, quantity int) error

	GetSettings(ctx context.Context, productID int) (*ProductSettings, error)

	// UpsertSettings creates or replaces the settings row for a product.
	// A duplicate SKU returns ErrConflict.
	UpsertSettings(ctx context.Context, s ProductSettings) (*ProductSettings, error)
}

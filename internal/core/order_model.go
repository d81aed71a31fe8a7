package core

import (
	"context"
	"time"
)

// Order is the internal stock-out record: one product, one quantity, no
// customer. Customer-facing orders live in SalesOrder.
type Order struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// StockChange reports a product's quantity after a mutation so callers can
// run the low-stock notification check.
type StockChange struct {
	ProductID   int
	NewQuantity int
	Found       bool // false when the decrement matched no product row
}

// OrderService records stock-out orders and keeps products.quantity in step.
type OrderService interface {
	List(ctx context.Context) ([]Order, error)

	// Create inserts the order row and decrements the referenced product's
	// quantity by the order quantity, atomically in one transaction. There is
	// no availability check: the product quantity may go negative. A product
	// id that matches no row still records the order (Found=false on the
	// returned StockChange).
	Create(ctx context.Context, productID, quantity int) (*Order, *StockChange, error)

	// Update rewrites product_id and quantity on an existing order row. Stock
	// is NOT re-adjusted; the original decrement stands.
	Update(ctx context.Context, id, productID, quantity int) (*Order, error)

	Delete(ctx context.Context, id int) error

	// Import upserts an order row by id without touching stock. Used by CSV import.
	Import(ctx context.Context, id, productID, quantity int, createdAt time.Time) error
}

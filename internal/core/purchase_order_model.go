package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is a supplier inbound order. TotalAmount is computed once at
// creation from the submitted items and never recomputed afterwards.
type PurchaseOrder struct {
	ID               int             `json:"id"`
	SupplierID       int             `json:"supplier_id"`
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	OrderDate        time.Time       `json:"order_date"`
	ExpectedDelivery *string         `json:"expected_delivery"`
	SupplierName     *string         `json:"supplier_name,omitempty"`
}

type PurchaseOrderItem struct {
	ID              int             `json:"id"`
	PurchaseOrderID int             `json:"purchase_order_id"`
	ProductID       int             `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderItemInput is one submitted line on a new purchase order.
type PurchaseOrderItemInput struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
}

// PurchaseOrderService records inbound supplier orders. Create/read only;
// there is no endpoint that modifies items after creation, so the stored
// total cannot drift in practice.
type PurchaseOrderService interface {
	// List returns purchase orders with the supplier name joined in.
	List(ctx context.Context) ([]PurchaseOrder, error)

	// Create inserts the header and all items in one transaction.
	// Total = Σ(quantity × unit price) over the submitted items.
	Create(ctx context.Context, supplierID int, items []PurchaseOrderItemInput, expectedDelivery *string) (*PurchaseOrder, error)
}

package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Fixed sales tax rate applied to every sales order subtotal.
var salesTaxRate = decimal.NewFromFloat(0.10)

// SalesOrder is a customer-facing order. The money columns are computed once
// at creation from the submitted items and never recomputed.
type SalesOrder struct {
	ID               int             `json:"id"`
	CustomerID       int             `json:"customer_id"`
	OrderNumber      string          `json:"order_number"`
	Status           string          `json:"status"`
	OrderDate        time.Time       `json:"order_date"`
	ExpectedDelivery *string         `json:"expected_delivery"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Notes            *string         `json:"notes"`
	CustomerName     *string         `json:"customer_name,omitempty"`
}

type SalesOrderItem struct {
	ID           int             `json:"id"`
	SalesOrderID int             `json:"sales_order_id"`
	ProductID    int             `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ProductName  *string         `json:"product_name,omitempty"`
}

// SalesOrderItemInput is one submitted line on a new sales order.
type SalesOrderItemInput struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
}

// SalesOrderTotals is the creation-time money summary.
type SalesOrderTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeSalesTotals derives subtotal, tax, and total from submitted items:
// subtotal = Σ(quantity × unit price), tax = subtotal × 0.10,
// total = subtotal + tax.
func ComputeSalesTotals(items []SalesOrderItemInput) SalesOrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	tax := subtotal.Mul(salesTaxRate)
	return SalesOrderTotals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// SalesOrderService records customer orders and decrements product stock per
// item. Orders are create/read only on this surface.
type SalesOrderService interface {
	// List returns sales orders with the customer name joined in, newest first.
	List(ctx context.Context) ([]SalesOrder, error)

	// Items returns an order's items with product names joined in.
	Items(ctx context.Context, salesOrderID int) ([]SalesOrderItem, error)

	// Create inserts the order header, every item, and the per-item product
	// quantity decrements in one transaction. The order number is
	// "SO-" + creation time in unix milliseconds. No stock availability check
	// is performed; quantities may go negative. The returned StockChanges
	// carry each touched product's post-decrement quantity for the low-stock
	// notification check.
	Create(ctx context.Context, customerID int, items []SalesOrderItemInput, expectedDelivery, notes *string) (*SalesOrder, []StockChange, error)
}

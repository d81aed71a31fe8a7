package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"warehouse-backend/internal/core"
)

func TestSalesOrderService_CreateFullCycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	products := core.NewProductService(pool)
	customers := core.NewCustomerService(pool)
	salesOrders := core.NewSalesOrderService(pool)

	p1, err := products.Create(ctx, "Widget A", 50)
	if err != nil {
		t.Fatalf("Create product failed: %v", err)
	}
	p2, err := products.Create(ctx, "Widget B", 30)
	if err != nil {
		t.Fatalf("Create product failed: %v", err)
	}
	customer, err := customers.Create(ctx, core.CustomerInput{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("Create customer failed: %v", err)
	}

	// 2 × 10.00 + 1 × 5.00 = 25.00 subtotal, 2.50 tax, 27.50 total
	order, changes, err := salesOrders.Create(ctx, customer.ID, []core.SalesOrderItemInput{
		{ProductID: p1.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: p2.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}, nil, nil)
	if err != nil {
		t.Fatalf("Create sales order failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNumber, "SO-") {
		t.Errorf("expected SO- prefix on order number, got %q", order.OrderNumber)
	}
	if order.Status != "pending" {
		t.Errorf("expected status pending, got %q", order.Status)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("expected subtotal 25.00, got %s", order.Subtotal)
	}
	if !order.TaxAmount.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("expected tax 2.50, got %s", order.TaxAmount)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("27.50")) {
		t.Errorf("expected total 27.50, got %s", order.TotalAmount)
	}

	if len(changes) != 2 {
		t.Fatalf("expected 2 stock changes, got %d", len(changes))
	}
	for _, c := range changes {
		switch c.ProductID {
		case p1.ID:
			if c.NewQuantity != 48 {
				t.Errorf("product %d: expected 48, got %d", c.ProductID, c.NewQuantity)
			}
		case p2.ID:
			if c.NewQuantity != 29 {
				t.Errorf("product %d: expected 29, got %d", c.ProductID, c.NewQuantity)
			}
		default:
			t.Errorf("unexpected stock change for product %d", c.ProductID)
		}
	}

	items, err := salesOrders.Items(ctx, order.ID)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// The list view joins the customer name in.
	list, err := salesOrders.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 sales order, got %d", len(list))
	}
	if list[0].CustomerName == nil || *list[0].CustomerName != "Acme Corp" {
		t.Errorf("expected joined customer name, got %v", list[0].CustomerName)
	}

	// Customer order history, newest first.
	history, err := customers.Orders(ctx, customer.ID)
	if err != nil {
		t.Fatalf("Orders failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != order.ID {
		t.Errorf("expected order %d in customer history, got %+v", order.ID, history)
	}
}

func TestCustomerService_Defaults(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	customers := core.NewCustomerService(pool)
	c, err := customers.Create(context.Background(), core.CustomerInput{Name: "Defaults Inc"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.CustomerType != "regular" {
		t.Errorf("expected default customer_type regular, got %q", c.CustomerType)
	}
	if c.PaymentTerms != "net_30" {
		t.Errorf("expected default payment_terms net_30, got %q", c.PaymentTerms)
	}
}

func TestReportingService_LowStockAlertsUsesReorderPoint(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	products := core.NewProductService(pool)
	reporting := core.NewReportingService(pool)

	// Default reorder point is 10: quantity 8 alerts, 15 does not.
	low, err := products.Create(ctx, "Low Default", 8)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := products.Create(ctx, "Fine Default", 15); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A custom reorder point of 20 pulls quantity 15 into the alert list.
	custom, err := products.Create(ctx, "Custom Threshold", 15)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := products.UpsertSettings(ctx, core.ProductSettings{
		ProductID: custom.ID, ReorderPoint: 20, MaxStock: 100,
	}); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}

	alerts, err := reporting.LowStockAlerts(ctx)
	if err != nil {
		t.Fatalf("LowStockAlerts failed: %v", err)
	}

	ids := make(map[int]bool, len(alerts))
	for _, a := range alerts {
		ids[a.ID] = true
	}
	if !ids[low.ID] {
		t.Errorf("expected product %d (qty 8, default threshold) in alerts", low.ID)
	}
	if !ids[custom.ID] {
		t.Errorf("expected product %d (qty 15, reorder point 20) in alerts", custom.ID)
	}
	if len(alerts) != 2 {
		t.Errorf("expected exactly 2 alerts, got %d", len(alerts))
	}
}

func TestUserService_DuplicateUsernameConflicts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	users := core.NewUserService(pool)

	if _, err := users.Create(ctx, "alice", "hash1", "user"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := users.Create(ctx, "alice", "hash2", "admin")
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestProductService_DuplicateSKUConflicts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	products := core.NewProductService(pool)

	a, err := products.Create(ctx, "Widget A", 10)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := products.Create(ctx, "Widget B", 10)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sku := "WID-001"
	if _, err := products.UpsertSettings(ctx, core.ProductSettings{
		ProductID: a.ID, ReorderPoint: 10, MaxStock: 100, SKU: &sku,
	}); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}
	_, err = products.UpsertSettings(ctx, core.ProductSettings{
		ProductID: b.ID, ReorderPoint: 10, MaxStock: 100, SKU: &sku,
	})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate sku, got %v", err)
	}
}

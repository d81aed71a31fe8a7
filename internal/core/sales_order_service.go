package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type salesOrderService struct {
	pool *pgxpool.Pool
}

func NewSalesOrderService(pool *pgxpool.Pool) SalesOrderService {
	return &salesOrderService{pool: pool}
}

func (s *salesOrderService) List(ctx context.Context) ([]SalesOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT so.id, so.customer_id, so.order_number, so.status, so.order_date,
		       so.expected_delivery, so.subtotal, so.tax_amount, so.total_amount, so.notes,
		       c.name AS customer_name
		FROM sales_orders so
		LEFT JOIN customers c ON so.customer_id = c.id
		ORDER BY so.order_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales orders: %w", err)
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		var so SalesOrder
		if err := rows.Scan(&so.ID, &so.CustomerID, &so.OrderNumber, &so.Status,
			&so.OrderDate, &so.ExpectedDelivery, &so.Subtotal, &so.TaxAmount,
			&so.TotalAmount, &so.Notes, &so.CustomerName); err != nil {
			return nil, fmt.Errorf("failed to scan sales order: %w", err)
		}
		orders = append(orders, so)
	}
	return orders, rows.Err()
}

func (s *salesOrderService) Items(ctx context.Context, salesOrderID int) ([]SalesOrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT soi.id, soi.sales_order_id, soi.product_id, soi.quantity,
		       soi.unit_price, soi.total_price, p.name AS product_name
		FROM sales_order_items soi
		LEFT JOIN products p ON soi.product_id = p.id
		WHERE soi.sales_order_id = $1
		ORDER BY soi.id`,
		salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sales order %d: %w", salesOrderID, err)
	}
	defer rows.Close()

	var items []SalesOrderItem
	for rows.Next() {
		var it SalesOrderItem
		if err := rows.Scan(&it.ID, &it.SalesOrderID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan sales order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create writes the header, items, and stock decrements in a single
// transaction: a failed item insert rolls back the header instead of leaving
// an order with fewer items than requested.
func (s *salesOrderService) Create(ctx context.Context, customerID int, items []SalesOrderItemInput, expectedDelivery, notes *string) (*SalesOrder, []StockChange, error) {
	totals := ComputeSalesTotals(items)
	orderNumber := fmt.Sprintf("SO-%d", time.Now().UnixMilli())

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	so := &SalesOrder{
		CustomerID:       customerID,
		OrderNumber:      orderNumber,
		Subtotal:         totals.Subtotal,
		TaxAmount:        totals.Tax,
		TotalAmount:      totals.Total,
		ExpectedDelivery: expectedDelivery,
		Notes:            notes,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO sales_orders (customer_id, order_number, subtotal, tax_amount, total_amount, expected_delivery, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, order_date`,
		customerID, orderNumber, totals.Subtotal, totals.Tax, totals.Total, expectedDelivery, notes,
	).Scan(&so.ID, &so.Status, &so.OrderDate)
	if isUniqueViolation(err) {
		// Two orders in the same millisecond collide on order_number.
		return nil, nil, fmt.Errorf("order number %s: %w", orderNumber, ErrConflict)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert sales order: %w", err)
	}

	var changes []StockChange
	for _, item := range items {
		totalPrice := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		_, err := tx.Exec(ctx, `
			INSERT INTO sales_order_items (sales_order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)`,
			so.ID, item.ProductID, item.Quantity, item.UnitPrice, totalPrice,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to insert item for product %d: %w", item.ProductID, err)
		}

		change := StockChange{ProductID: item.ProductID}
		err = tx.QueryRow(ctx,
			`UPDATE products SET quantity = quantity - $1 WHERE id = $2 RETURNING quantity`,
			item.Quantity, item.ProductID,
		).Scan(&change.NewQuantity)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			change.Found = false
		case err != nil:
			return nil, nil, fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
		default:
			change.Found = true
		}
		changes = append(changes, change)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit sales order: %w", err)
	}
	return so, changes, nil
}

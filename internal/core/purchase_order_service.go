package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type purchaseOrderService struct {
	pool *pgxpool.Pool
}

func NewPurchaseOrderService(pool *pgxpool.Pool) PurchaseOrderService {
	return &purchaseOrderService{pool: pool}
}

func (s *purchaseOrderService) List(ctx context.Context) ([]PurchaseOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT po.id, po.supplier_id, po.status, po.total_amount, po.order_date, po.expected_delivery,
		       sp.name AS supplier_name
		FROM purchase_orders po
		LEFT JOIN suppliers sp ON po.supplier_id = sp.id
		ORDER BY po.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SupplierID, &po.Status, &po.TotalAmount,
			&po.OrderDate, &po.ExpectedDelivery, &po.SupplierName); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (s *purchaseOrderService) Create(ctx context.Context, supplierID int, items []PurchaseOrderItemInput, expectedDelivery *string) (*PurchaseOrder, error) {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	po := &PurchaseOrder{
		SupplierID:       supplierID,
		Status:           "pending",
		TotalAmount:      total,
		ExpectedDelivery: expectedDelivery,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO purchase_orders (supplier_id, total_amount, expected_delivery)
		VALUES ($1, $2, $3)
		RETURNING id, status, order_date`,
		supplierID, total, expectedDelivery,
	).Scan(&po.ID, &po.Status, &po.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase order: %w", err)
	}

	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_order_items (purchase_order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			po.ID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert purchase order item for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase order: %w", err)
	}
	return po, nil
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderService struct {
	pool *pgxpool.Pool
}

// NewOrderService constructs an OrderService backed by PostgreSQL.
func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

func (s *orderService) List(ctx context.Context) ([]Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, product_id, quantity, created_at FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Create records the order and decrements the product's stock in one
// transaction, so a failure on either side leaves no half-written state.
func (s *orderService) Create(ctx context.Context, productID, quantity int) (*Order, *StockChange, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	o := &Order{ProductID: productID, Quantity: quantity}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (product_id, quantity) VALUES ($1, $2) RETURNING id, created_at`,
		productID, quantity,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert order: %w", err)
	}

	change := &StockChange{ProductID: productID}
	err = tx.QueryRow(ctx,
		`UPDATE products SET quantity = quantity - $1 WHERE id = $2 RETURNING quantity`,
		quantity, productID,
	).Scan(&change.NewQuantity)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// No such product: the order is still recorded, stock is unchanged.
		change.Found = false
	case err != nil:
		return nil, nil, fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	default:
		change.Found = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return o, change, nil
}

func (s *orderService) Update(ctx context.Context, id, productID, quantity int) (*Order, error) {
	o := &Order{ID: id, ProductID: productID, Quantity: quantity}
	err := s.pool.QueryRow(ctx,
		`UPDATE orders SET product_id = $1, quantity = $2 WHERE id = $3 RETURNING created_at`,
		productID, quantity, id,
	).Scan(&o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return o, nil
}

func (s *orderService) Delete(ctx context.Context, id int) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}

func (s *orderService) Import(ctx context.Context, id, productID, quantity int, createdAt time.Time) error {
	var err error
	if id > 0 {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO orders (id, product_id, quantity, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				product_id = EXCLUDED.product_id,
				quantity   = EXCLUDED.quantity,
				created_at = EXCLUDED.created_at`,
			id, productID, quantity, createdAt,
		)
	} else {
		_, err = s.pool.Exec(ctx,
			`INSERT INTO orders (product_id, quantity, created_at) VALUES ($1, $2, $3)`,
			productID, quantity, createdAt)
	}
	if err != nil {
		return fmt.Errorf("failed to import order row: %w", err)
	}
	return nil
}

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

func (s *productService) List(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, quantity FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *productService) Get(ctx context.Context, id int) (*Product, error) {
	p := &Product{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, quantity FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, name string, quantity int) (*Product, error) {
	p := &Product{Name: name, Quantity: quantity}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO products (name, quantity) VALUES ($1, $2) RETURNING id`,
		name, quantity,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (s *productService) Update(ctx context.Context, id int, name string, quantity int) (*Product, error) {
	// Zero rows affected is not reported: a stale id silently updates nothing,
	// matching the rest of this surface.
	_, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $1, quantity = $2 WHERE id = $3`,
		name, quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &Product{ID: id, Name: name, Quantity: quantity}, nil
}

func (s *productService) Delete(ctx context.Context, id int) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func (s *productService) Import(ctx context.Context, id int, name string, quantity int) error {
	var err error
	if id > 0 {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO products (id, name, quantity) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, quantity = EXCLUDED.quantity`,
			id, name, quantity,
		)
	} else {
		_, err = s.pool.Exec(ctx,
			`INSERT INTO products (name, quantity) VALUES ($1, $2)`, name, quantity)
	}
	if err != nil {
		return fmt.Errorf("failed to import product row: %w", err)
	}
	return nil
}

func (s *productService) GetSettings(ctx context.Context, productID int) (*ProductSettings, error) {
	ps := &ProductSettings{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, product_id, reorder_point, max_stock, supplier_id, category, sku, cost_price, selling_price
		FROM product_settings
		WHERE product_id = $1`,
		productID,
	).Scan(&ps.ID, &ps.ProductID, &ps.ReorderPoint, &ps.MaxStock,
		&ps.SupplierID, &ps.Category, &ps.SKU, &ps.CostPrice, &ps.SellingPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settings for product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings for product %d: %w", productID, err)
	}
	return ps, nil
}

func (s *productService) UpsertSettings(ctx context.Context, in ProductSettings) (*ProductSettings, error) {
	out := in
	err := s.pool.QueryRow(ctx, `
		INSERT INTO product_settings (product_id, reorder_point, max_stock, supplier_id, category, sku, cost_price, selling_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id) DO UPDATE SET
			reorder_point = EXCLUDED.reorder_point,
			max_stock     = EXCLUDED.max_stock,
			supplier_id   = EXCLUDED.supplier_id,
			category      = EXCLUDED.category,
			sku           = EXCLUDED.sku,
			cost_price    = EXCLUDED.cost_price,
			selling_price = EXCLUDED.selling_price
		RETURNING id`,
		in.ProductID, in.ReorderPoint, in.MaxStock, in.SupplierID,
		in.Category, in.SKU, in.CostPrice, in.SellingPrice,
	).Scan(&out.ID)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("sku %v: %w", in.SKU, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings for product %d: %w", in.ProductID, err)
	}
	return &out, nil
}

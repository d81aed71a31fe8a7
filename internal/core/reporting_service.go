package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) LowStockAlerts(ctx context.Context) ([]LowStockAlert, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, p.quantity,
		       COALESCE(ps.reorder_point, 10),
		       COALESCE(ps.max_stock, 100),
		       sp.name AS supplier_name
		FROM products p
		LEFT JOIN product_settings ps ON p.id = ps.product_id
		LEFT JOIN suppliers sp ON ps.supplier_id = sp.id
		WHERE p.quantity <= COALESCE(ps.reorder_point, 10)
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock alerts: %w", err)
	}
	defer rows.Close()

	var alerts []LowStockAlert
	for rows.Next() {
		var a LowStockAlert
		if err := rows.Scan(&a.ID, &a.Name, &a.Quantity, &a.ReorderPoint, &a.MaxStock, &a.SupplierName); err != nil {
			return nil, fmt.Errorf("failed to scan low stock alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *reportingService) UsageForecast(ctx context.Context, productID int) (*Forecast, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date, SUM(quantity) AS daily_usage
		FROM orders
		WHERE product_id = $1 AND created_at >= NOW() - INTERVAL '30 days'
		GROUP BY created_at::date
		ORDER BY created_at::date`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage history for product %d: %w", productID, err)
	}
	defer rows.Close()

	var points []ForecastPoint
	for rows.Next() {
		var p ForecastPoint
		if err := rows.Scan(&p.Date, &p.DailyUsage); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", err)
	}

	f := ComputeForecast(points)
	return &f, nil
}

func (s *reportingService) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT category FROM product_settings WHERE category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

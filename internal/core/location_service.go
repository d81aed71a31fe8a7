package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type locationService struct {
	pool *pgxpool.Pool
}

func NewLocationService(pool *pgxpool.Pool) LocationService {
	return &locationService{pool: pool}
}

func (s *locationService) List(ctx context.Context) ([]Location, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, address, type FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Type); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *locationService) Create(ctx context.Context, name string, address *string, locType string) (*Location, error) {
	if locType == "" {
		locType = "warehouse"
	}
	l := &Location{Name: name, Address: address, Type: locType}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO locations (name, address, type) VALUES ($1, $2, $3) RETURNING id`,
		name, address, locType,
	).Scan(&l.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}
	return l, nil
}

func (s *locationService) StockByLocation(ctx context.Context) ([]LocationStock, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ibl.id, ibl.product_id, ibl.location_id, ibl.quantity,
		       COALESCE(p.name, ''), COALESCE(l.name, '')
		FROM inventory_by_location ibl
		LEFT JOIN products p ON ibl.product_id = p.id
		LEFT JOIN locations l ON ibl.location_id = l.id
		ORDER BY ibl.location_id, ibl.product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory by location: %w", err)
	}
	defer rows.Close()

	var stock []LocationStock
	for rows.Next() {
		var ls LocationStock
		if err := rows.Scan(&ls.ID, &ls.ProductID, &ls.LocationID, &ls.Quantity,
			&ls.ProductName, &ls.LocationName); err != nil {
			return nil, fmt.Errorf("failed to scan location stock: %w", err)
		}
		stock = append(stock, ls)
	}
	return stock, rows.Err()
}

func (s *locationService) SetStock(ctx context.Context, productID, locationID, quantity int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO inventory_by_location (product_id, location_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, location_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		productID, locationID, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to set stock for product %d at location %d: %w", productID, locationID, err)
	}
	return nil
}

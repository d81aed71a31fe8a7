package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type supplierService struct {
	pool *pgxpool.Pool
}

func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

func (s *supplierService) List(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, contact_email, contact_phone, address, created_at
		FROM suppliers
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var sp Supplier
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.ContactEmail, &sp.ContactPhone, &sp.Address, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, sp)
	}
	return suppliers, rows.Err()
}

func (s *supplierService) Create(ctx context.Context, name string, contactEmail, contactPhone, address *string) (*Supplier, error) {
	sp := &Supplier{Name: name, ContactEmail: contactEmail, ContactPhone: contactPhone, Address: address}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_email, contact_phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		name, contactEmail, contactPhone, address,
	).Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return sp, nil
}

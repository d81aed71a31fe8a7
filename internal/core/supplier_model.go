package core

import (
	"context"
	"time"
)

// Supplier is a contact-info-only record referenced by product settings and
// purchase orders.
type Supplier struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierService is create/read only; suppliers have no update or delete
// surface.
type SupplierService interface {
	List(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, name string, contactEmail, contactPhone, address *string) (*Supplier, error)
}

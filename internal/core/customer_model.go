package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a contact/billing profile. CreditLimit is stored but never
// enforced anywhere in order creation.
type Customer struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Email        *string         `json:"email"`
	Phone        *string         `json:"phone"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	State        *string         `json:"state"`
	ZipCode      *string         `json:"zip_code"`
	Country      *string         `json:"country"`
	CustomerType string          `json:"customer_type"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CustomerInput carries the writable customer fields for create and update.
type CustomerInput struct {
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
	CustomerType string
	CreditLimit  decimal.Decimal
	PaymentTerms string
}

type CustomerService interface {
	// List returns all customers ordered by name.
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, in CustomerInput) (*Customer, error)
	Update(ctx context.Context, id int, in CustomerInput) (*Customer, error)
	Delete(ctx context.Context, id int) error

	// Orders returns the customer's sales orders, newest first.
	Orders(ctx context.Context, customerID int) ([]SalesOrder, error)
}

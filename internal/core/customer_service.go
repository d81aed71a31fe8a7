package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type customerService struct {
	pool *pgxpool.Pool
}

func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

func (s *customerService) List(ctx context.Context) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, phone, address, city, state, zip_code, country,
		       customer_type, credit_limit, payment_terms, created_at
		FROM customers
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City,
			&c.State, &c.ZipCode, &c.Country, &c.CustomerType, &c.CreditLimit,
			&c.PaymentTerms, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *customerService) Create(ctx context.Context, in CustomerInput) (*Customer, error) {
	c := customerFromInput(in)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, address, city, state, zip_code, country,
		                       customer_type, credit_limit, payment_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		in.Name, in.Email, in.Phone, in.Address, in.City, in.State, in.ZipCode,
		in.Country, c.CustomerType, in.CreditLimit, c.PaymentTerms,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, id int, in CustomerInput) (*Customer, error) {
	c := customerFromInput(in)
	c.ID = id
	_, err := s.pool.Exec(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, city = $5, state = $6,
		    zip_code = $7, country = $8, customer_type = $9, credit_limit = $10, payment_terms = $11
		WHERE id = $12`,
		in.Name, in.Email, in.Phone, in.Address, in.City, in.State, in.ZipCode,
		in.Country, c.CustomerType, in.CreditLimit, c.PaymentTerms, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id int) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	return nil
}

func (s *customerService) Orders(ctx context.Context, customerID int) ([]SalesOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_id, order_number, status, order_date, expected_delivery,
		       subtotal, tax_amount, total_amount, notes
		FROM sales_orders
		WHERE customer_id = $1
		ORDER BY order_date DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		var so SalesOrder
		if err := rows.Scan(&so.ID, &so.CustomerID, &so.OrderNumber, &so.Status,
			&so.OrderDate, &so.ExpectedDelivery, &so.Subtotal, &so.TaxAmount,
			&so.TotalAmount, &so.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan sales order: %w", err)
		}
		orders = append(orders, so)
	}
	return orders, rows.Err()
}

func customerFromInput(in CustomerInput) *Customer {
	c := &Customer{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Country:      in.Country,
		CustomerType: in.CustomerType,
		CreditLimit:  in.CreditLimit,
		PaymentTerms: in.PaymentTerms,
	}
	if c.CustomerType == "" {
		c.CustomerType = "regular"
	}
	if c.PaymentTerms == "" {
		c.PaymentTerms = "net_30"
	}
	return c
}

package app

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request structs are the explicit per-endpoint input shapes. The web
// adapter validates them (validator tags) before any storage call.

type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity"`
}

type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity"`
}

// ProductImportRow is one parsed CSV line. ID 0 means "assign a new id".
type ProductImportRow struct {
	ID       int
	Name     string
	Quantity int
}

type ProductSettingsRequest struct {
	ReorderPoint int              `json:"reorder_point" validate:"gte=0"`
	MaxStock     int              `json:"max_stock" validate:"gte=0"`
	SupplierID   *int             `json:"supplier_id"`
	Category     *string          `json:"category"`
	SKU          *string          `json:"sku"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

type CreateOrderRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

type OrderImportRow struct {
	ID        int
	ProductID int
	Quantity  int
	CreatedAt time.Time
}

type CreateSupplierRequest struct {
	Name         string  `json:"name" validate:"required"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}

type PurchaseOrderItemRequest struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID       int                        `json:"supplier_id" validate:"required,gt=0"`
	Items            []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDelivery *string                    `json:"expected_delivery"`
}

type CustomerRequest struct {
	Name         string          `json:"name" validate:"required"`
	Email        *string         `json:"email" validate:"omitempty,email"`
	Phone        *string         `json:"phone"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	State        *string         `json:"state"`
	ZipCode      *string         `json:"zip_code"`
	Country      *string         `json:"country"`
	CustomerType string          `json:"customer_type"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
}

type SalesOrderItemRequest struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateSalesOrderRequest struct {
	CustomerID       int                     `json:"customer_id" validate:"required,gt=0"`
	Items            []SalesOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDelivery *string                 `json:"expected_delivery"`
	Notes            *string                 `json:"notes"`
}

type CreateLocationRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
	Type    string  `json:"type"`
}

type SetLocationStockRequest struct {
	ProductID  int `json:"product_id" validate:"required,gt=0"`
	LocationID int `json:"location_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

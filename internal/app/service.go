package app

import (
	"context"

	"warehouse-backend/internal/core"
)

// ApplicationService is the single interface the UI adapters call. It
// decouples presentation from business logic; implementations contain no
// HTTP types and no display logic.
type ApplicationService interface {
	// ── Products ──────────────────────────────────────────────────────────
	ListProducts(ctx context.Context) ([]core.Product, error)
	GetProduct(ctx context.Context, id int) (*core.Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest, actor string) (*core.Product, error)

	// UpdateProduct overwrites name and quantity, then runs the low-stock
	// notification check on the product.
	UpdateProduct(ctx context.Context, id int, req UpdateProductRequest, actor string) (*core.Product, error)
	DeleteProduct(ctx context.Context, id int, actor string) error

	// ImportProducts upserts rows parsed from a CSV file. Rows are applied
	// independently; a failing row aborts the import mid-way (no rollback of
	// earlier rows).
	ImportProducts(ctx context.Context, rows []ProductImportRow) error

	// GetProductSettings returns ErrNotFound when the product has no
	// settings row.
	GetProductSettings(ctx context.Context, productID int) (*core.ProductSettings, error)
	UpsertProductSettings(ctx context.Context, productID int, req ProductSettingsRequest, actor string) (*core.ProductSettings, error)

	// ── Orders (internal stock-out records) ───────────────────────────────
	ListOrders(ctx context.Context) ([]core.Order, error)

	// CreateOrder records the order, decrements stock atomically, and
	// enqueues the low-stock check plus the audit append.
	CreateOrder(ctx context.Context, req CreateOrderRequest, actor string) (*core.Order, error)
	UpdateOrder(ctx context.Context, id int, req CreateOrderRequest, actor string) (*core.Order, error)
	DeleteOrder(ctx context.Context, id int, actor string) error
	ImportOrders(ctx context.Context, rows []OrderImportRow) error

	// ── Suppliers / purchase orders ───────────────────────────────────────
	ListSuppliers(ctx context.Context) ([]core.Supplier, error)
	CreateSupplier(ctx context.Context, req CreateSupplierRequest, actor string) (*core.Supplier, error)
	ListPurchaseOrders(ctx context.Context) ([]core.PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest, actor string) (*core.PurchaseOrder, error)

	// ── Customers / sales orders ──────────────────────────────────────────
	ListCustomers(ctx context.Context) ([]core.Customer, error)
	CreateCustomer(ctx context.Context, req CustomerRequest, actor string) (*core.Customer, error)
	UpdateCustomer(ctx context.Context, id int, req CustomerRequest, actor string) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, id int, actor string) error
	CustomerOrders(ctx context.Context, customerID int) ([]core.SalesOrder, error)

	ListSalesOrders(ctx context.Context) ([]core.SalesOrder, error)
	SalesOrderItems(ctx context.Context, salesOrderID int) ([]core.SalesOrderItem, error)

	// CreateSalesOrder computes totals, writes the order atomically, and
	// enqueues a low-stock check per decremented product.
	CreateSalesOrder(ctx context.Context, req CreateSalesOrderRequest, actor string) (*core.SalesOrder, error)

	// ── Locations ─────────────────────────────────────────────────────────
	ListLocations(ctx context.Context) ([]core.Location, error)
	CreateLocation(ctx context.Context, req CreateLocationRequest, actor string) (*core.Location, error)
	StockByLocation(ctx context.Context) ([]core.LocationStock, error)
	SetLocationStock(ctx context.Context, req SetLocationStockRequest, actor string) error

	// ── Users ─────────────────────────────────────────────────────────────
	RegisterUser(ctx context.Context, req RegisterRequest) (*core.User, error)

	// AuthenticateUser reports one generic failure for unknown user and bad
	// password alike.
	AuthenticateUser(ctx context.Context, username, password string) (*core.User, error)

	// ── Derived views ─────────────────────────────────────────────────────
	AuditTrail(ctx context.Context) ([]core.AuditLog, error)
	LowStockAlerts(ctx context.Context) ([]core.LowStockAlert, error)
	UsageForecast(ctx context.Context, productID int) (*core.Forecast, error)
	Categories(ctx context.Context) ([]string, error)

	// ── Assistant ─────────────────────────────────────────────────────────
	Chat(ctx context.Context, message string) (string, error)
}

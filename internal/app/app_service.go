package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"warehouse-backend/internal/assistant"
	"warehouse-backend/internal/async"
	"warehouse-backend/internal/core"
)

// lowStockNotifyQty is the hardcoded email trigger threshold. It is
// deliberately independent of the per-product reorder point the alerts view
// uses: a product with a customized reorder point of 20 and quantity 15
// appears in the alert list but sends no email.
const lowStockNotifyQty = 10

// auditTrailLimit caps the audit view at the most recent rows.
const auditTrailLimit = 100

// ErrInvalidCredentials is the single failure reported for both unknown
// usernames and mismatched passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LowStockNotifier delivers a low-stock alert for one product.
// *notify.LowStockMailer is the production implementation.
type LowStockNotifier interface {
	Notify(product core.Product) error
}

type appService struct {
	products       core.ProductService
	orders         core.OrderService
	suppliers      core.SupplierService
	purchaseOrders core.PurchaseOrderService
	customers      core.CustomerService
	salesOrders    core.SalesOrderService
	locations      core.LocationService
	users          core.UserService
	audit          core.AuditService
	reporting      core.ReportingService

	responder *assistant.Responder
	queue     *async.Queue
	notifier  LowStockNotifier // nil disables notifications
	log       *logrus.Logger
}

// Services bundles the core services NewAppService wires together.
type Services struct {
	Products       core.ProductService
	Orders         core.OrderService
	Suppliers      core.SupplierService
	PurchaseOrders core.PurchaseOrderService
	Customers      core.CustomerService
	SalesOrders    core.SalesOrderService
	Locations      core.LocationService
	Users          core.UserService
	Audit          core.AuditService
	Reporting      core.ReportingService
}

// NewAppService creates the concrete ApplicationService. queue carries the
// fire-and-forget side effects (audit rows, low-stock mail); notifier may
// be nil.
func NewAppService(svcs Services, queue *async.Queue, notifier LowStockNotifier, log *logrus.Logger) ApplicationService {
	return &appService{
		products:       svcs.Products,
		orders:         svcs.Orders,
		suppliers:      svcs.Suppliers,
		purchaseOrders: svcs.PurchaseOrders,
		customers:      svcs.Customers,
		salesOrders:    svcs.SalesOrders,
		locations:      svcs.Locations,
		users:          svcs.Users,
		audit:          svcs.Audit,
		reporting:      svcs.Reporting,
		responder:      assistant.NewResponder(svcs.Products, svcs.Orders, svcs.Customers, svcs.Suppliers),
		queue:          queue,
		notifier:       notifier,
		log:            log,
	}
}

// ── Side-effect helpers ───────────────────────────────────────────────────

// recordAudit enqueues a best-effort audit append. The caller's request does
// not wait for it and never sees its failure.
func (s *appService) recordAudit(action, entity string, entityID int, actor string, details map[string]any) {
	s.queue.Submit(func(ctx context.Context) {
		if err := s.audit.Record(ctx, action, entity, entityID, actor, details); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"action": action, "entity": entity, "entity_id": entityID,
			}).Warn("audit record failed")
		}
	})
}

// checkLowStock re-reads the product and sends the notification when its
// current quantity is under the hardcoded threshold. Runs on the queue,
// after the triggering response.
func (s *appService) checkLowStock(productID int) {
	s.queue.Submit(func(ctx context.Context) {
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				s.log.WithError(err).WithField("product_id", productID).Warn("low stock check failed")
			}
			return
		}
		if product.Quantity >= lowStockNotifyQty {
			return
		}
		if s.notifier == nil {
			s.log.WithFields(logrus.Fields{
				"product_id": product.ID, "quantity": product.Quantity,
			}).Info("low stock detected, mail transport not configured")
			return
		}
		if err := s.notifier.Notify(*product); err != nil {
			s.log.WithError(err).WithField("product_id", product.ID).Warn("low stock email failed")
		}
	})
}

// ── Products ──────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context) ([]core.Product, error) {
	return s.products.List(ctx)
}

func (s *appService) GetProduct(ctx context.Context, id int) (*core.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *appService) CreateProduct(ctx context.Context, req CreateProductRequest, actor string) (*core.Product, error) {
	p, err := s.products.Create(ctx, req.Name, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "product", p.ID, actor, map[string]any{"name": req.Name, "quantity": req.Quantity})
	return p, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id int, req UpdateProductRequest, actor string) (*core.Product, error) {
	p, err := s.products.Update(ctx, id, req.Name, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.recordAudit("edit", "product", id, actor, map[string]any{"name": req.Name, "quantity": req.Quantity})
	s.checkLowStock(id)
	return p, nil
}

func (s *appService) DeleteProduct(ctx context.Context, id int, actor string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit("delete", "product", id, actor, map[string]any{})
	return nil
}

func (s *appService) ImportProducts(ctx context.Context, rows []ProductImportRow) error {
	for _, row := range rows {
		if err := s.products.Import(ctx, row.ID, row.Name, row.Quantity); err != nil {
			return fmt.Errorf("import product %q: %w", row.Name, err)
		}
	}
	return nil
}

func (s *appService) GetProductSettings(ctx context.Context, productID int) (*core.ProductSettings, error) {
	return s.products.GetSettings(ctx, productID)
}

func (s *appService) UpsertProductSettings(ctx context.Context, productID int, req ProductSettingsRequest, actor string) (*core.ProductSettings, error) {
	ps, err := s.products.UpsertSettings(ctx, core.ProductSettings{
		ProductID:    productID,
		ReorderPoint: req.ReorderPoint,
		MaxStock:     req.MaxStock,
		SupplierID:   req.SupplierID,
		Category:     req.Category,
		SKU:          req.SKU,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit("edit", "product_settings", productID, actor, map[string]any{"reorder_point": req.ReorderPoint})
	return ps, nil
}

// ── Orders ────────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context) ([]core.Order, error) {
	return s.orders.List(ctx)
}

func (s *appService) CreateOrder(ctx context.Context, req CreateOrderRequest, actor string) (*core.Order, error) {
	o, change, err := s.orders.Create(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "order", o.ID, actor, map[string]any{"product_id": req.ProductID, "quantity": req.Quantity})
	if change.Found {
		s.checkLowStock(change.ProductID)
	}
	return o, nil
}

func (s *appService) UpdateOrder(ctx context.Context, id int, req CreateOrderRequest, actor string) (*core.Order, error) {
	o, err := s.orders.Update(ctx, id, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.recordAudit("edit", "order", id, actor, map[string]any{"product_id": req.ProductID, "quantity": req.Quantity})
	return o, nil
}

func (s *appService) DeleteOrder(ctx context.Context, id int, actor string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit("delete", "order", id, actor, map[string]any{})
	return nil
}

func (s *appService) ImportOrders(ctx context.Context, rows []OrderImportRow) error {
	for _, row := range rows {
		if err := s.orders.Import(ctx, row.ID, row.ProductID, row.Quantity, row.CreatedAt); err != nil {
			return fmt.Errorf("import order row: %w", err)
		}
	}
	return nil
}

// ── Suppliers / purchase orders ───────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context) ([]core.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *appService) CreateSupplier(ctx context.Context, req CreateSupplierRequest, actor string) (*core.Supplier, error) {
	sp, err := s.suppliers.Create(ctx, req.Name, req.ContactEmail, req.ContactPhone, req.Address)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "supplier", sp.ID, actor, map[string]any{"name": req.Name})
	return sp, nil
}

func (s *appService) ListPurchaseOrders(ctx context.Context) ([]core.PurchaseOrder, error) {
	return s.purchaseOrders.List(ctx)
}

func (s *appService) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest, actor string) (*core.PurchaseOrder, error) {
	items := make([]core.PurchaseOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, core.PurchaseOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	po, err := s.purchaseOrders.Create(ctx, req.SupplierID, items, req.ExpectedDelivery)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "purchase_order", po.ID, actor, map[string]any{
		"supplier_id": req.SupplierID, "total_amount": po.TotalAmount.String(),
	})
	return po, nil
}

// ── Customers / sales orders ──────────────────────────────────────────────

func (s *appService) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	return s.customers.List(ctx)
}

func (s *appService) CreateCustomer(ctx context.Context, req CustomerRequest, actor string) (*core.Customer, error) {
	c, err := s.customers.Create(ctx, customerInput(req))
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "customer", c.ID, actor, map[string]any{"name": req.Name, "email": req.Email})
	return c, nil
}

func (s *appService) UpdateCustomer(ctx context.Context, id int, req CustomerRequest, actor string) (*core.Customer, error) {
	c, err := s.customers.Update(ctx, id, customerInput(req))
	if err != nil {
		return nil, err
	}
	s.recordAudit("edit", "customer", id, actor, map[string]any{"name": req.Name, "email": req.Email})
	return c, nil
}

func (s *appService) DeleteCustomer(ctx context.Context, id int, actor string) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit("delete", "customer", id, actor, map[string]any{})
	return nil
}

func (s *appService) CustomerOrders(ctx context.Context, customerID int) ([]core.SalesOrder, error) {
	return s.customers.Orders(ctx, customerID)
}

func (s *appService) ListSalesOrders(ctx context.Context) ([]core.SalesOrder, error) {
	return s.salesOrders.List(ctx)
}

func (s *appService) SalesOrderItems(ctx context.Context, salesOrderID int) ([]core.SalesOrderItem, error) {
	return s.salesOrders.Items(ctx, salesOrderID)
}

func (s *appService) CreateSalesOrder(ctx context.Context, req CreateSalesOrderRequest, actor string) (*core.SalesOrder, error) {
	items := make([]core.SalesOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, core.SalesOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	so, changes, err := s.salesOrders.Create(ctx, req.CustomerID, items, req.ExpectedDelivery, req.Notes)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "sales_order", so.ID, actor, map[string]any{
		"order_number": so.OrderNumber, "customer_id": req.CustomerID, "total_amount": so.TotalAmount.String(),
	})
	for _, change := range changes {
		if change.Found {
			s.checkLowStock(change.ProductID)
		}
	}
	return so, nil
}

// ── Locations ─────────────────────────────────────────────────────────────

func (s *appService) ListLocations(ctx context.Context) ([]core.Location, error) {
	return s.locations.List(ctx)
}

func (s *appService) CreateLocation(ctx context.Context, req CreateLocationRequest, actor string) (*core.Location, error) {
	l, err := s.locations.Create(ctx, req.Name, req.Address, req.Type)
	if err != nil {
		return nil, err
	}
	s.recordAudit("add", "location", l.ID, actor, map[string]any{"name": req.Name, "type": l.Type})
	return l, nil
}

func (s *appService) StockByLocation(ctx context.Context) ([]core.LocationStock, error) {
	return s.locations.StockByLocation(ctx)
}

func (s *appService) SetLocationStock(ctx context.Context, req SetLocationStockRequest, actor string) error {
	if err := s.locations.SetStock(ctx, req.ProductID, req.LocationID, req.Quantity); err != nil {
		return err
	}
	s.recordAudit("edit", "inventory_by_location", req.ProductID, actor, map[string]any{
		"location_id": req.LocationID, "quantity": req.Quantity,
	})
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────

func (s *appService) RegisterUser(ctx context.Context, req RegisterRequest) (*core.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.Create(ctx, req.Username, string(hash), req.Role)
}

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*core.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Unknown user and bad password are indistinguishable to the caller.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ── Derived views ─────────────────────────────────────────────────────────

func (s *appService) AuditTrail(ctx context.Context) ([]core.AuditLog, error) {
	return s.audit.Latest(ctx, auditTrailLimit)
}

func (s *appService) LowStockAlerts(ctx context.Context) ([]core.LowStockAlert, error) {
	return s.reporting.LowStockAlerts(ctx)
}

func (s *appService) UsageForecast(ctx context.Context, productID int) (*core.Forecast, error) {
	return s.reporting.UsageForecast(ctx, productID)
}

func (s *appService) Categories(ctx context.Context) ([]string, error) {
	return s.reporting.Categories(ctx)
}

// ── Assistant ─────────────────────────────────────────────────────────────

func (s *appService) Chat(ctx context.Context, message string) (string, error) {
	return s.responder.Respond(ctx, message)
}

func customerInput(req CustomerRequest) core.CustomerInput {
	return core.CustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		CustomerType: req.CustomerType,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
	}
}

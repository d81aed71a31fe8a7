package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"warehouse-backend/internal/app"
	webui "warehouse-backend/web"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	jwtSecret  string
	validate   *validator.Validate
	fileServer http.Handler
	log        *logrus.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, log *logrus.Logger) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		jwtSecret:  jwtSecret,
		validate:   validator.New(),
		fileServer: http.FileServer(http.FS(staticFS)),
		log:        log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Metrics)
	r.Use(CORS(allowedOrigins))

	// ── Operational (public) ─────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ── Auth (public) ────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)

		// ── Products ─────────────────────────────────────────────────────
		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		// ── Orders ───────────────────────────────────────────────────────
		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Put("/api/orders/{id}", h.updateOrder)
		r.Delete("/api/orders/{id}", h.deleteOrder)

		// ── Suppliers / purchase orders ──────────────────────────────────
		r.Get("/api/suppliers", h.listSuppliers)
		r.Post("/api/suppliers", h.createSupplier)
		r.Get("/api/purchase-orders", h.listPurchaseOrders)
		r.Post("/api/purchase-orders", h.createPurchaseOrder)

		// ── Customers / sales orders ─────────────────────────────────────
		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)
		r.Put("/api/customers/{id}", h.updateCustomer)
		r.Delete("/api/customers/{id}", h.deleteCustomer)
		r.Get("/api/customers/{id}/orders", h.customerOrders)
		r.Get("/api/sales-orders", h.listSalesOrders)
		r.Post("/api/sales-orders", h.createSalesOrder)
		r.Get("/api/sales-orders/{id}/items", h.salesOrderItems)

		// ── Derived views ────────────────────────────────────────────────
		r.With(h.RequireAuth()).Get("/api/audit-logs", h.auditLogs)
		r.Get("/api/low-stock-alerts", h.lowStockAlerts)
		r.Get("/api/inventory-forecast/{productId}", h.inventoryForecast)
		r.Get("/api/categories", h.categories)

		// ── Locations (reads are public, writes are gated below) ─────────
		r.Get("/api/locations", h.listLocations)
		r.Get("/api/inventory-by-location", h.stockByLocation)

		// ── Assistant ────────────────────────────────────────────────────
		r.Post("/api/chat", h.chatMessage)
	})

	// ── CSV / spreadsheet transfer (import body limit handled per route) ─
	r.Get("/api/products/export", h.exportProductsCSV)
	r.Get("/api/products/export.xlsx", h.exportProductsXLSX)
	r.With(RequestBodyLimit(10 << 20)).Post("/api/products/import", h.importProductsCSV)
	r.Get("/api/orders/export", h.exportOrdersCSV)
	r.With(RequestBodyLimit(10 << 20)).Post("/api/orders/import", h.importOrdersCSV)

	// ── Admin-gated writes ───────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth("admin"))
		r.Use(RequestBodyLimit(1 << 20))

		r.Put("/api/products/{id}/settings", h.upsertProductSettings)
		r.Post("/api/locations", h.createLocation)
		r.Put("/api/inventory-by-location", h.setLocationStock)
	})

	// ── Embedded dashboard ───────────────────────────────────────────────
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		h.fileServer.ServeHTTP(w, req)
	})

	h.router = r
	return r
}

// health reports service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeValid decodes and then validates the request struct, so handlers
// fail fast before touching storage.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, r, "validation failed: "+err.Error(), "VALIDATION_FAILED", http.StatusBadRequest)
		return false
	}
	return true
}

// urlID extracts an integer URL parameter; writes a 400 and returns false on
// a non-numeric value.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, r, "invalid "+name+" parameter", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Command seed loads a small demo dataset: an admin user, a handful of
// products with settings, two suppliers, customers, and locations. Intended
// for local development against a fresh database.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/core"
	"warehouse-backend/internal/db"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	if err := db.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	defer pool.Close()

	products := core.NewProductService(pool)
	suppliers := core.NewSupplierService(pool)
	customers := core.NewCustomerService(pool)
	locations := core.NewLocationService(pool)
	users := core.NewUserService(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hash failed")
	}
	if _, err := users.Create(ctx, "admin", string(hash), "admin"); err != nil {
		log.WithError(err).Warn("admin user not created")
	}

	acme, err := suppliers.Create(ctx, "Acme Supply Co", ptr("orders@acmesupply.example"), ptr("555-0100"), ptr("12 Industrial Way"))
	if err != nil {
		log.WithError(err).Fatal("supplier seed failed")
	}
	if _, err := suppliers.Create(ctx, "Northside Wholesale", ptr("sales@northside.example"), nil, nil); err != nil {
		log.WithError(err).Fatal("supplier seed failed")
	}

	type seedProduct struct {
		name     string
		quantity int
		category string
		sku      string
		cost     string
		sell     string
	}
	for _, sp := range []seedProduct{
		{"Widget A", 50, "widgets", "WID-A", "2.50", "4.99"},
		{"Widget B", 8, "widgets", "WID-B", "3.10", "5.99"},
		{"Gadget Pro", 120, "gadgets", "GAD-P", "12.00", "24.99"},
		{"Gadget Mini", 5, "gadgets", "GAD-M", "6.00", "11.50"},
		{"Spare Bolt Pack", 300, "hardware", "HW-BOLT", "0.40", "1.25"},
	} {
		p, err := products.Create(ctx, sp.name, sp.quantity)
		if err != nil {
			log.WithError(err).Fatal("product seed failed")
		}
		cost := decimal.RequireFromString(sp.cost)
		sell := decimal.RequireFromString(sp.sell)
		if _, err := products.UpsertSettings(ctx, core.ProductSettings{
			ProductID:    p.ID,
			ReorderPoint: 10,
			MaxStock:     200,
			SupplierID:   &acme.ID,
			Category:     &sp.category,
			SKU:          &sp.sku,
			CostPrice:    &cost,
			SellingPrice: &sell,
		}); err != nil {
			log.WithError(err).Fatal("product settings seed failed")
		}
	}

	for _, c := range []core.CustomerInput{
		{Name: "Jordan Blake", Email: ptr("jordan@example.com"), CustomerType: "regular", PaymentTerms: "net_30"},
		{Name: "Rivertown Retail", Email: ptr("buy@rivertown.example"), CustomerType: "wholesale", PaymentTerms: "net_60", CreditLimit: decimal.NewFromInt(5000)},
	} {
		if _, err := customers.Create(ctx, c); err != nil {
			log.WithError(err).Fatal("customer seed failed")
		}
	}

	if _, err := locations.Create(ctx, "Main Warehouse", ptr("1 Depot Rd"), "warehouse"); err != nil {
		log.WithError(err).Fatal("location seed failed")
	}
	if _, err := locations.Create(ctx, "Storefront", ptr("48 High St"), "store"); err != nil {
		log.WithError(err).Fatal("location seed failed")
	}

	log.Info("seed complete")
}

func ptr(s string) *string { return &s }

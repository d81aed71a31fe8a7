package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	webAdapter "warehouse-backend/internal/adapters/web"
	"warehouse-backend/internal/app"
	"warehouse-backend/internal/async"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/core"
	"warehouse-backend/internal/db"
	"warehouse-backend/internal/notify"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	defer pool.Close()

	queue := async.NewQueue(log, 4, 256)
	// Assign through a nil check so an unconfigured mailer stays a nil
	// interface rather than a non-nil interface holding a nil pointer.
	var notifier app.LowStockNotifier
	if mailer := notify.NewLowStockMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.LowStockEmailTo); mailer != nil {
		notifier = mailer
	} else {
		log.Info("low stock mail disabled, SMTP not configured")
	}

	svc := app.NewAppService(app.Services{
		Products:       core.NewProductService(pool),
		Orders:         core.NewOrderService(pool),
		Suppliers:      core.NewSupplierService(pool),
		PurchaseOrders: core.NewPurchaseOrderService(pool),
		Customers:      core.NewCustomerService(pool),
		SalesOrders:    core.NewSalesOrderService(pool),
		Locations:      core.NewLocationService(pool),
		Users:          core.NewUserService(pool),
		Audit:          core.NewAuditService(pool),
		Reporting:      core.NewReportingService(pool),
	}, queue, notifier, log)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret, log)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.ServerPort).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	log.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(stopCtx); err != nil {
		log.WithError(err).Warn("server shutdown failed")
	}

	// Let in-flight audit rows and notification mail drain.
	queue.Close(5 * time.Second)

	log.Info("stopped")
	os.Exit(0)
}

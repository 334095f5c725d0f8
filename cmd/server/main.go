package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/firf18/red-salud-sub010/internal/application/inventory"
	purchasingapp "github.com/firf18/red-salud-sub010/internal/application/purchasing"
	receivingapp "github.com/firf18/red-salud-sub010/internal/application/receiving"
	reportapp "github.com/firf18/red-salud-sub010/internal/application/report"
	"github.com/firf18/red-salud-sub010/internal/domain/costing"
	"github.com/firf18/red-salud-sub010/internal/domain/fiscal"
	"github.com/firf18/red-salud-sub010/internal/domain/receiving"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/config"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/logger"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/persistence"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/dto"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/handler"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (TOML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	ctx := context.Background()

	kv, cleanup, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer cleanup()

	// Domain
	ledger := costing.NewLedger(persistence.NewLayerStore(kv), log)
	if err := ledger.Load(ctx); err != nil {
		log.Fatal("failed to load cost layers", zap.Error(err))
	}
	book := fiscal.NewBook(persistence.NewFiscalStore(kv), log)
	if err := book.Load(ctx); err != nil {
		log.Fatal("failed to load fiscal books", zap.Error(err))
	}
	sessions := receiving.NewManager(log)

	m := metrics.NewDefault()

	// Application services
	margin := decimal.NewFromFloat(cfg.Pricing.ProfitMargin)
	inventoryService := inventoryapp.NewInventoryService(ledger, book, m, margin)
	receivingService := receivingapp.NewReceivingService(sessions, ledger, m, log, cfg.Reorder.FEFOPolicyMonths)
	purchasingService := purchasingapp.NewPurchasingService(ledger, log, cfg.Reorder.VMDWindowDays)
	reportService := reportapp.NewReportService(book, log)

	if err := dto.RegisterValidations(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	engine := router.New(log, m, router.Handlers{
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Receiving:  handler.NewReceivingHandler(receivingService),
		Purchasing: handler.NewPurchasingHandler(purchasingService),
		Report:     handler.NewReportHandler(reportService),
	}, cfg.App.Environment)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: engine,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("stopped")
}

// openStorage builds the configured persistence backend and a cleanup
// function to close it
func openStorage(ctx context.Context, cfg *config.Config) (persistence.KVStore, func(), error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		store, err := persistence.NewGormStore(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		store, err := persistence.NewRedisStore(ctx,
			cfg.Storage.Redis.Addr,
			cfg.Storage.Redis.Password,
			cfg.Storage.Redis.DB,
			cfg.Storage.Redis.Prefix,
		)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return persistence.NewMemoryStore(), func() {}, nil
	}
}

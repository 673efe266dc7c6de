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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/bookverse/bookverse-backend/api/routes"
	"github.com/bookverse/bookverse-backend/internal/cart"
	"github.com/bookverse/bookverse-backend/internal/catalog"
	checkoutsvc "github.com/bookverse/bookverse-backend/internal/checkout"
	"github.com/bookverse/bookverse-backend/internal/ledger"
	"github.com/bookverse/bookverse-backend/internal/orders"
	"github.com/bookverse/bookverse-backend/internal/wallet"
	"github.com/bookverse/bookverse-backend/pkg/config"
	"github.com/bookverse/bookverse-backend/pkg/db"
	"github.com/bookverse/bookverse-backend/pkg/env"
	"github.com/bookverse/bookverse-backend/pkg/logger"
	"github.com/bookverse/bookverse-backend/pkg/metrics"
	"github.com/bookverse/bookverse-backend/pkg/migrate"
	"github.com/bookverse/bookverse-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRedisPersister(redisClient, cfg.Cart), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	profileRepo := wallet.NewRepository(dbClient.DB())
	walletService, err := wallet.NewService(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

	balanceBroker, err := wallet.NewBroker(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create balance broker", err)
		os.Exit(1)
	}

	orderRepo := orders.NewRepository(dbClient.DB())
	orderService, err := orders.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	ledgerRepo := ledger.NewRepository(dbClient.DB())
	ledgerService, err := ledger.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartService,
		profileRepo,
		orderRepo,
		ledgerRepo,
		balanceBroker,
		metrics.NewCheckoutMetrics(registry),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(routes.Dependencies{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Cache:          redisClient,
		Idempotency:    redisClient,
		Catalog:        catalogService,
		Cart:           cartService,
		Wallet:         walletService,
		BalanceWatcher: balanceBroker,
		Ledger:         ledgerService,
		Orders:         orderService,
		Checkout:       checkoutService,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		Registry:       registry,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(drainCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

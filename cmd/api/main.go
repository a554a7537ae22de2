package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/westcoasttreez/storefront-backend/api/routes"
	cartsvc "github.com/westcoasttreez/storefront-backend/internal/cart"
	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	checkoutsvc "github.com/westcoasttreez/storefront-backend/internal/checkout"
	modesvc "github.com/westcoasttreez/storefront-backend/internal/mode"
	ordersvc "github.com/westcoasttreez/storefront-backend/internal/orders"
	"github.com/westcoasttreez/storefront-backend/pkg/config"
	"github.com/westcoasttreez/storefront-backend/pkg/db"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/metrics"
	"github.com/westcoasttreez/storefront-backend/pkg/migrate"
	"github.com/westcoasttreez/storefront-backend/pkg/notify"
	"github.com/westcoasttreez/storefront-backend/pkg/redis"
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
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	loadedCatalog, warnings, err := catalog.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	for _, warning := range warnings {
		storefrontMetrics.IncCatalogIntegrityWarning()
		ctx := logg.WithFields(context.Background(), map[string]any{
			"item_id": warning.ItemID,
			"reason":  warning.Reason,
		})
		logg.Warn(ctx, "catalog item dropped")
	}

	var relay *notify.Client
	if cfg.Notify.Enabled() {
		relay, err = notify.NewClient(cfg.Notify)
		if err != nil {
			logg.Error(context.Background(), "failed to create notification client", err)
			os.Exit(1)
		}
	} else {
		logg.Info(context.Background(), "notification relay not configured, order emails disabled")
	}

	cartService := cartsvc.NewService(cartsvc.NewStore(), loadedCatalog, logg, storefrontMetrics)
	modeSelector := modesvc.NewSelector(redisClient, cfg.Mode, logg)
	ordersRepo := ordersvc.NewRepository(dbClient.DB())
	ordersService := ordersvc.NewService(ordersRepo, logg)

	var notifier checkoutsvc.Notifier
	if relay != nil {
		notifier = relay
	}
	checkoutService := checkoutsvc.NewService(
		cartService,
		modeSelector,
		loadedCatalog,
		ordersRepo,
		notifier,
		logg,
		storefrontMetrics,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"catalog": loadedCatalog.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Metrics:  storefrontMetrics,
			Registry: registry,
			DB:       dbClient,
			Redis:    redisClient,
			Catalog:  loadedCatalog,
			Carts:    cartService,
			Modes:    modeSelector,
			Checkout: checkoutService,
			Orders:   ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

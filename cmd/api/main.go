package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stockroomhq/stockroom-backend/api/routes"
	"github.com/stockroomhq/stockroom-backend/internal/changelog"
	"github.com/stockroomhq/stockroom-backend/internal/customers"
	"github.com/stockroomhq/stockroom-backend/internal/dashboard"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/internal/orders"
	"github.com/stockroomhq/stockroom-backend/internal/purchaseorders"
	"github.com/stockroomhq/stockroom-backend/internal/suppliers"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()
	changelogService := changelog.NewService(changelog.NewRepository(gormDB), logg)
	inventoryService := inventory.NewService(dbClient, inventory.NewRepository(gormDB), changelogService, logg)
	ordersService := orders.NewService(dbClient, orders.NewRepository(gormDB), inventoryService, logg)
	suppliersService := suppliers.NewService(suppliers.NewRepository(gormDB))
	customersService := customers.NewService(customers.NewRepository(gormDB))
	purchaseOrdersService := purchaseorders.NewService(purchaseorders.NewRepository(gormDB))
	dashboardService := dashboard.NewService(inventoryService, ordersService, redisClient, cfg.Dashboard.CacheTTL, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			inventoryService,
			ordersService,
			changelogService,
			suppliersService,
			customersService,
			purchaseOrdersService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

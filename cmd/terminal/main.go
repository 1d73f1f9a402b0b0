package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dukapos/pos-terminal/api/routes"
	"github.com/dukapos/pos-terminal/internal/backend"
	"github.com/dukapos/pos-terminal/internal/catalog"
	checkoutsvc "github.com/dukapos/pos-terminal/internal/checkout"
	"github.com/dukapos/pos-terminal/internal/sales"
	"github.com/dukapos/pos-terminal/internal/session"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/dukapos/pos-terminal/pkg/logger"
	"github.com/dukapos/pos-terminal/pkg/metrics"
	pkgredis "github.com/dukapos/pos-terminal/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "terminal"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "terminal",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engineMetrics := metrics.NewEngineMetrics(registry)

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	backendClient := backend.NewClient(cfg.Backend, engineMetrics)

	catalogService, err := catalog.NewService(catalog.NewClient(backendClient), logg, engineMetrics, cfg.Search.MinQueryLength)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(sales.NewClient(backendClient), logg, engineMetrics, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	sessions := session.NewManager()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
	})
	logg.Info(ctx, "starting terminal server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Backend:         backendClient,
			Redis:           redisClient,
			Sessions:        sessions,
			CatalogService:  catalogService,
			CheckoutService: checkoutService,
			MetricsRegistry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "terminal server stopped unexpectedly", err)
		os.Exit(1)
	}
}

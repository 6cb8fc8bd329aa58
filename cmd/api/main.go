package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lacomanda/comanda-backend/api/routes"
	"github.com/lacomanda/comanda-backend/internal/checkout"
	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/internal/kds"
	"github.com/lacomanda/comanda-backend/internal/orders"
	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/db"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/metrics"
	"github.com/lacomanda/comanda-backend/pkg/migrate"
	"github.com/lacomanda/comanda-backend/pkg/redis"
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

	// The board cache is an optimization; the API stays up without redis.
	var redisClient *redis.Client
	var redisPinger redis.Pinger
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		redisPinger = redisClient
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, board cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	flowMetrics := metrics.NewOrderFlowMetrics(registry)

	var boardCache *kds.BoardCache
	if redisClient != nil && cfg.FeatureFlags.BoardCache {
		boardCache = kds.NewBoardCache(redisClient, cfg.KDS.BoardCacheTTL, logg)
	}

	recorder, err := events.NewRecorder(events.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create event recorder", err)
		os.Exit(1)
	}

	var invalidator orders.BoardInvalidator
	if boardCache != nil {
		invalidator = boardCache
	}

	flowService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, recorder, invalidator, flowMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order flow service", err)
		os.Exit(1)
	}

	boardService, err := kds.NewService(kds.NewRepository(dbClient.DB()), boardCache, flowMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create kds service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(orders.NewRepository(dbClient.DB()), dbClient, recorder, invalidator, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisPinger, registry, boardService, flowService, checkoutService, recorder),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

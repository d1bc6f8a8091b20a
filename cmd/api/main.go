package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bunnybot/storefront-api/api/routes"
	"github.com/bunnybot/storefront-api/internal/cart"
	"github.com/bunnybot/storefront-api/internal/catalog"
	"github.com/bunnybot/storefront-api/internal/contact"
	"github.com/bunnybot/storefront-api/internal/medusa"
	"github.com/bunnybot/storefront-api/internal/orders"
	"github.com/bunnybot/storefront-api/internal/revalidate"
	"github.com/bunnybot/storefront-api/internal/strapi"
	"github.com/bunnybot/storefront-api/pkg/config"
	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/metrics"
	"github.com/bunnybot/storefront-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

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

	strapiClient, err := strapi.NewClient(cfg.Strapi, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content client", err)
		os.Exit(1)
	}
	medusaClient, err := medusa.NewClient(cfg.Medusa, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create commerce client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(strapiClient, medusaClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(medusaClient, redisClient, cfg.Cache.SessionTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	outbox, err := contact.OpenOutbox(cfg.Contact.OutboxPath)
	if err != nil {
		logg.Error(context.Background(), "failed to open contact outbox", err)
		os.Exit(1)
	}
	defer func() {
		if err := outbox.Close(); err != nil {
			logg.Error(context.Background(), "error closing contact outbox", err)
		}
	}()

	contactService, err := contact.NewService(outbox, strapiClient, cfg.Contact.MaxForwardAttempts, cfg.Contact.MessageMaxRunes, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(medusaClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpStats := metrics.NewHTTPMetrics(registry)
	cacheStats := metrics.NewPageCacheMetrics(registry)

	revalidateService, err := revalidate.NewService(redisClient, cfg.Revalidate.Secret, logg, cacheStats)
	if err != nil {
		logg.Error(context.Background(), "failed to create revalidate service", err)
		os.Exit(1)
	}

	flushCtx, stopFlush := context.WithCancel(context.Background())
	defer stopFlush()
	go flushContactOutbox(flushCtx, contactService, cfg.Contact, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:     cfg,
			Logger:     logg,
			Redis:      redisClient,
			Strapi:     strapiClient,
			Medusa:     medusaClient,
			Catalog:    catalogService,
			Cart:       cartService,
			Contact:    contactService,
			Orders:     ordersService,
			Revalidate: revalidateService,
			HTTPStats:  httpStats,
			CacheStats: cacheStats,
			Metrics:    registry,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		logg.Info(ctx, "shutting down")
		stopFlush()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}

// flushContactOutbox retries pending contact submissions until the context
// is cancelled.
func flushContactOutbox(ctx context.Context, svc contact.Service, cfg config.ContactConfig, logg *logger.Logger) {
	ticker := time.NewTicker(cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			forwarded, err := svc.FlushPending(ctx, cfg.FlushBatchSize)
			if err != nil {
				logg.Error(ctx, "contact outbox flush failed", err)
				continue
			}
			if forwarded > 0 {
				logg.Info(logg.WithField(ctx, "forwarded", forwarded), "contact outbox flushed")
			}
		}
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/electroquick/api/routes"
	"github.com/angelmondragon/electroquick/internal/cart"
	"github.com/angelmondragon/electroquick/internal/catalog"
	"github.com/angelmondragon/electroquick/internal/checkout"
	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/angelmondragon/electroquick/pkg/kvstore"
	"github.com/angelmondragon/electroquick/pkg/logger"
	"github.com/angelmondragon/electroquick/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"storage_backend": cfg.Storage.NormalizedBackend(),
	})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	storage, err := kvstore.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, storage.Close())
	}()

	dataset, err := catalog.LoadDataset(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	catalogService, err := catalog.NewService(dataset)
	if err != nil {
		return err
	}

	calculator, err := checkout.NewCalculator(cfg.Checkout)
	if err != nil {
		return err
	}

	store, err := cart.NewStore(cart.StoreParams{
		Backend:      storage.Backend,
		Logger:       logg,
		Metrics:      metrics.NewCartMetrics(registry),
		StorageKey:   cfg.Cart.StorageKey,
		ReadTimeout:  cfg.Storage.ReadTimeout,
		WriteTimeout: cfg.Storage.WriteTimeout,
	})
	if err != nil {
		return err
	}
	store.Start(ctx)

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: routes.NewRouter(cfg, logg, registry, storage.Backend, catalogService, store, calculator),
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "starting storefront server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	case err = <-serveErr:
		if err != nil {
			_ = store.Close(context.WithoutCancel(ctx))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.App.ShutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		store.Close(shutdownCtx),
	)
	if err == nil {
		logg.Info(ctx, "storefront stopped")
	}
	return err
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	httptransport "github.com/Nwoyi/staffing-api/internal/api/http"
	"github.com/Nwoyi/staffing-api/internal/config"
	"github.com/Nwoyi/staffing-api/internal/events"
	"github.com/Nwoyi/staffing-api/internal/observability"
	"github.com/Nwoyi/staffing-api/internal/repository"
	"github.com/Nwoyi/staffing-api/internal/service"
	"github.com/Nwoyi/staffing-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open staff store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	staffService := service.NewStaffService(store, dispatcher, service.WithLogger(logger))

	app := httptransport.NewServer(httptransport.ServerDeps{
		App:          cfg.App,
		CORS:         cfg.CORS,
		Logger:       logger,
		Metrics:      metrics,
		StaffService: staffService,
		Store:        store,
	})

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := multierr.Combine(app.Shutdown(), store.Close()); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

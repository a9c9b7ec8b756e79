package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Allocator/internal/api"
	"github.com/MikeSquared-Agency/Allocator/internal/broker"
	"github.com/MikeSquared-Agency/Allocator/internal/config"
	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := pg.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Info("no database configured, using in-memory store")
	}
	defer db.Close()

	defaults := store.ModelWeights{
		WeightEducation:   cfg.Model.WeightEducation,
		WeightNormative:   cfg.Model.WeightNormative,
		WeightResearch:    cfg.Model.WeightResearch,
		TotalSystemBudget: cfg.Model.TotalSystemBudget,
		TotalSystemPoints: cfg.Model.TotalSystemPoints,
	}
	if err := defaults.Validate(); err != nil {
		logger.Error("invalid model weights", "error", err)
		os.Exit(1)
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	metrics := api.NewMetrics()
	scorer := scoring.NewScorer(logger, metrics.ObserveResult)

	// Recalculator
	if cfg.Recalculation.Enabled && hermesClient != nil {
		rc := broker.NewRecalculator(db, hermesClient, scorer, defaults, cfg.Debounce(), logger)
		rc.SetupSubscriptions()
		rc.Start(ctx)
		defer rc.Stop()
		rc.EnqueueAll(ctx)
		logger.Info("recalculator started", "debounce", cfg.Debounce())
	}

	// API server
	router := api.NewRouter(db, hermesClient, scorer, defaults, metrics, cfg.Server, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(metrics),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

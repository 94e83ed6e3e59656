package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/farm-location-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/farm-location-etl/internal/adapter/kafka"
	"github.com/couchcryptid/farm-location-etl/internal/adapter/postgres"
	"github.com/couchcryptid/farm-location-etl/internal/config"
	"github.com/couchcryptid/farm-location-etl/internal/observability"
	"github.com/couchcryptid/farm-location-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres backs the postgres sink and the profile address route.
	var store *postgres.Store
	if cfg.Sink == config.SinkPostgres || cfg.ProfileReadsEnabled {
		store, err = postgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			logger.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	reader := kafkaadapter.NewReader(cfg, logger)

	var loader pipeline.BatchLoader
	var kafkaWriter *kafkaadapter.Writer
	switch cfg.Sink {
	case config.SinkPostgres:
		loader = store
		logger.Info("sink: postgres profiles table")
	default:
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		loader = kafkaWriter
		logger.Info("sink: kafka", "topic", cfg.KafkaSinkTopic)
	}

	transformer := pipeline.NewTransformer(cfg.DefaultRegion, cfg.DefaultDistrict, logger)
	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	var locator httpadapter.ProfileLocator
	ready := httpadapter.AllReady{p}
	if store != nil {
		ready = append(ready, store)
	}
	if cfg.ProfileReadsEnabled {
		locator = store
	}
	api := httpadapter.NewLocationAPI(cfg.DefaultRegion, cfg.DefaultDistrict, locator, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, api, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/station-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/station-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/station-report-service/internal/config"
	"github.com/couchcryptid/station-report-service/internal/domain"
	"github.com/couchcryptid/station-report-service/internal/observability"
	"github.com/couchcryptid/station-report-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	opts := domain.Options{
		AcceptedTokens:  cfg.AcceptedTokens,
		RequiredColumns: cfg.RequiredColumns,
	}
	analyzer := pipeline.New(opts, logger, metrics)

	// Report publishing is feature-flagged via KAFKA_ENABLED.
	var publisher httpadapter.ReportPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.PublisherEnabled.Set(1)
		logger.Info("report publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("report publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, analyzer, publisher, cfg.MaxUploadBytes, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("service started",
		"accepted_tokens", cfg.AcceptedTokens,
		"required_columns", cfg.RequiredColumns,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/config"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// NeoWs catalog client with an LRU cache over lookups.
	client := neows.NewClient(cfg.NASAAPIKey, cfg.NeoTimeout, logger, metrics)
	var source catalog.Source = neows.NewCachedSource(client, cfg.NeoCacheSize, metrics)
	logger.Info("neows catalog enabled", "cache_size", cfg.NeoCacheSize, "timeout", cfg.NeoTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Threat feed pipeline (feature-flagged via FEED_ENABLED).
	var ready httpadapter.ReadinessChecker = httpadapter.ReadinessFunc(func(context.Context) error { return nil })
	var writer *kafkaadapter.Writer
	if cfg.FeedEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(source, writer, logger, metrics, cfg.FeedPollInterval, cfg.AssessmentLat, cfg.AssessmentLon)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("feed pipeline error", "error", err)
			}
		}()
		logger.Info("threat feed enabled",
			"poll_interval", cfg.FeedPollInterval,
			"sink_topic", cfg.KafkaSinkTopic,
			"assessment_lat", cfg.AssessmentLat,
			"assessment_lon", cfg.AssessmentLon,
		)
	} else {
		logger.Info("threat feed disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, source, nil, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

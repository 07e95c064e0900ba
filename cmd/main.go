package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"outreach-analytics-service/internal/analytics"
	"outreach-analytics-service/internal/config"
	"outreach-analytics-service/internal/controller"
	"outreach-analytics-service/internal/db"
	httpserver "outreach-analytics-service/internal/http"
	"outreach-analytics-service/internal/logging"
	"outreach-analytics-service/internal/metrics"
	"outreach-analytics-service/internal/repository"
	"outreach-analytics-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	collector := metrics.New(prometheus.DefaultRegisterer)

	repo := repository.NewEventRepository(conn)
	worker := service.NewBatchEventWorker(repo, logger, collector, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)
	defer worker.Shutdown()

	eventService := service.NewEventService(worker, cfg.FutureTolerance)
	engine := analytics.NewEngine(repo, logger, collector)
	analyticsController := controller.NewAnalyticsController(eventService, engine)

	server := httpserver.NewServer(cfg, analyticsController)

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.HTTPPort).Msg("starting server")
	if err := server.Listen(cfg.HTTPPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

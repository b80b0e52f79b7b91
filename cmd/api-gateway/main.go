package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/api/swagger"
	"github.com/noah-isme/hiring-pipeline-api/internal/handler"
	"github.com/noah-isme/hiring-pipeline-api/internal/pipeline"
	"github.com/noah-isme/hiring-pipeline-api/internal/repository"
	"github.com/noah-isme/hiring-pipeline-api/internal/scheduler"
	"github.com/noah-isme/hiring-pipeline-api/internal/service"
	"github.com/noah-isme/hiring-pipeline-api/pkg/cache"
	"github.com/noah-isme/hiring-pipeline-api/pkg/config"
	"github.com/noah-isme/hiring-pipeline-api/pkg/database"
	"github.com/noah-isme/hiring-pipeline-api/pkg/jobs"
	"github.com/noah-isme/hiring-pipeline-api/pkg/logger"
)

// @title Hiring Pipeline API
// @version 1.0.0
// @description Application stage transitions and recruiting reports
// @BasePath /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	swagger.SwaggerInfo.BasePath = cfg.APIPrefix

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, report cache disabled", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "hiring", logr)
	defer cacheRepo.Close()

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled && redisClient != nil)
	reportSvc := service.NewReportService(repository.NewSnapshotRepository(db), cacheSvc, metrics, cfg.Reports.CacheTTL, logr)
	exportSvc := service.NewExportService(reportSvc)

	events := jobs.NewQueue("stage-events", jobs.QueueConfig{
		Workers:    cfg.Events.Workers,
		BufferSize: cfg.Events.BufferSize,
		MaxRetries: cfg.Events.MaxRetries,
		RetryDelay: cfg.Events.RetryDelay,
		Logger:     logr,
	})
	service.NewStageEventHandler(reportSvc, metrics, logr).Register(events)
	events.Start(ctx)
	defer events.Stop()

	pipelineSvc := service.NewPipelineService(
		repository.NewApplicationRepository(db),
		pipeline.NewEngine(nil),
		validator.New(),
		events,
		metrics,
		logr,
	)

	if cacheSvc.Enabled() {
		warmer := scheduler.NewWarmer(reportSvc, cfg.Reports.WarmSchedule, cfg.Reports.WarmWindow, logr)
		if err := warmer.Start(ctx); err != nil {
			return err
		}
		defer warmer.Stop()
	}

	router := newRouter(routerDeps{
		cfg:          cfg,
		logger:       logr,
		metrics:      metrics,
		applications: handler.NewApplicationHandler(pipelineSvc),
		reports:      handler.NewReportHandler(reportSvc, exportSvc),
		observe: handler.NewMetricsHandler(metrics, map[string]handler.HealthCheck{
			"postgres": db.PingContext,
			"redis":    cacheRepo.Ping,
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/hiring-pipeline-api/internal/handler"
	"github.com/noah-isme/hiring-pipeline-api/internal/middleware"
	"github.com/noah-isme/hiring-pipeline-api/internal/service"
	"github.com/noah-isme/hiring-pipeline-api/pkg/config"
	"github.com/noah-isme/hiring-pipeline-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/hiring-pipeline-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hiring-pipeline-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg          *config.Config
	logger       *zap.Logger
	metrics      *service.MetricsService
	applications *handler.ApplicationHandler
	reports      *handler.ReportHandler
	observe      *handler.MetricsHandler
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger))
	r.Use(middleware.Metrics(d.metrics))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))

	r.GET("/health", d.observe.Health)
	r.GET("/ready", d.observe.Ready)
	r.GET("/metrics", d.observe.Prometheus)

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	api.GET("/metrics/system", d.observe.System)

	apps := api.Group("/applications")
	apps.GET("/:id", d.applications.Get)
	apps.GET("/:id/history", d.applications.History)
	apps.PATCH("/:id/stage", d.applications.ChangeStage)

	reports := api.Group("/reports")
	reports.GET("/:type", d.reports.Get)
	reports.GET("/:type/export", d.reports.Export)

	return r
}

package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hosfile/prepay-api/api/swagger"
	"github.com/hosfile/prepay-api/internal/handler"
	"github.com/hosfile/prepay-api/internal/middleware"
	"github.com/hosfile/prepay-api/internal/nas"
	"github.com/hosfile/prepay-api/internal/service"
	"github.com/hosfile/prepay-api/internal/store"
	"github.com/hosfile/prepay-api/pkg/config"
	"github.com/hosfile/prepay-api/pkg/logger"
	corsmiddleware "github.com/hosfile/prepay-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hosfile/prepay-api/pkg/middleware/requestid"
	"github.com/hosfile/prepay-api/pkg/storage"
)

// @title Pre-payment Submission API
// @version 1.0.0
// @description Hospital pre-payment file submission registry with NAS upload integration
// @BasePath /
// @schemes http

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

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	submissions := store.NewSubmissionStore()
	users := store.NewUserStore()
	nasSession := nas.NewSession(cfg.NAS, logr)
	metricsSvc := service.NewMetricsService()

	submissionSvc := service.NewSubmissionService(submissions, uploads, nasSession, metricsSvc, validate, logr, service.SubmissionServiceConfig{
		MaxFileSize:    cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:   cfg.Uploads.AllowedMIMEs,
		NasDestination: cfg.NAS.UploadPath,
	})
	exportSvc := service.NewExportService(submissions)
	authSvc := service.NewAuthService(users, validate, logr, cfg.Auth)

	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	api := r.Group("/api")
	{
		api.GET("/health", metricsHandler.Health)
		api.GET("/nas/status", submissionHandler.NasStatus)

		api.GET("/submissions", submissionHandler.List)
		api.GET("/submissions/counts", submissionHandler.Counts)
		api.GET("/submissions/export", exportHandler.Export)
		api.GET("/submissions/hospital/:hospital", submissionHandler.ByHospital)
		api.GET("/submissions/:id", submissionHandler.Get)
		api.POST("/submissions", submissionHandler.Create)
		api.PATCH("/submissions/:id", submissionHandler.Update)
		api.DELETE("/submissions/:id", submissionHandler.Delete)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.Auth(authSvc), authHandler.Me)
	}

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

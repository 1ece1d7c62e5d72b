package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-site/config"
	_ "go-portfolio-site/docs" // Important for Swagger
	"go-portfolio-site/internal/content"
	v1 "go-portfolio-site/internal/delivery/http/v1"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/internal/view"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/redis"
	"go-portfolio-site/pkg/security"
	"go-portfolio-site/pkg/telemetry"
	"go-portfolio-site/pkg/thumbnail"
	"go-portfolio-site/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Site API
// @version         1.0
// @description     Contact form and content API of the portfolio site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	secLogger := security.InitSecurityLogger(cfg.OTELServiceName, cfg.Environment)
	defer secLogger.Sync()
	logger.Log.Info("Starting portfolio site", "port", cfg.Port, "env", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Tracing
	tracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.OTELServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		logger.Log.Warn("Tracing disabled", "error", err)
	}

	// 4. Setup Redis (rate limiting falls back to memory without it)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	}
	defer redis.Close()

	// 5. Load Content
	validate := validation.New()
	store, err := content.NewStore(cfg.ContentPath, validate)
	if err != nil {
		logger.Log.Error("Failed to load content", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}
	if cfg.ContentWatch {
		store.OnReload = func(err error) {
			if err != nil {
				logger.Log.Error("Content reload failed, keeping previous content", "error", err)
				return
			}
			logger.Log.Info("Content reloaded", "path", store.Path())
		}
		go func() {
			if err := store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.Error("Content watcher stopped", "error", err)
			}
		}()
	}

	// 6. Setup Email Delivery
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Invalid email configuration", "error", err)
		os.Exit(1)
	}
	missingIDs := cfg.EmailProvider != "smtp" && (cfg.EmailJSServiceID == "" || cfg.EmailJSTemplateID == "" || cfg.EmailJSPublicKey == "")
	if !sender.IsConfigured() || missingIDs {
		logger.Log.Warn("Email delivery not configured - contact form will report a configuration error")
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, validate, usecase.ContactOptions{
		Delivery: usecase.DeliveryConfig{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
		},
		MessageSentDisplay: cfg.MessageSentDisplay,
	})
	contentUC := usecase.NewContentUsecase(store)
	seoUC := usecase.NewSEOUsecase(cfg.SiteURL)
	healthUC := usecase.NewHealthUsecase(sender, store)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:  contactUC,
		ContentUC:  contentUC,
		SEOUC:      seoUC,
		HealthUC:   healthUC,
		Templates:  view.MustTemplates(),
		Thumbnails: thumbnail.NewScaler(cfg.AssetsDir, thumbnail.DefaultMaxDimension, thumbnail.DefaultQuality),
		Config:     cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Tracer shutdown failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}

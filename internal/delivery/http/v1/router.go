package v1

import (
	"html/template"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC  domain.ContactUsecase
	ContentUC  domain.ContentUsecase
	SEOUC      domain.SEOUsecase
	HealthUC   usecase.HealthUsecase
	Templates  *template.Template
	Thumbnails ThumbnailSource
	Config     *config.Config
	// Now defaults to time.Now
	Now func() time.Time
	// ContactLimit overrides the contact rate limit built from Config
	ContactLimit *middleware.RateLimitConfig
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if deps.Now == nil {
		deps.Now = time.Now
	}
	contactLimit := middleware.ContactRateLimitConfig(cfg)
	if deps.ContactLimit != nil {
		contactLimit = *deps.ContactLimit
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg)))
	// The api contact endpoint checks the Origin of form posts and is rate limited instead
	r.Use(middleware.CSRFMiddleware(cfg.IsProduction(), "/v1/contact"))

	v1 := r.Group("/v1")

	// One budget shared by the form and the JSON endpoint
	limiter := middleware.RateLimitMiddleware(contactLimit)

	pages := NewPageHandler(r, deps.ContentUC, deps.Templates, deps.Now)
	formOrigins := append([]string{cfg.SiteURL}, cfg.AllowedOrigins...)
	NewContactHandler(r.Group("", limiter), v1.Group("", limiter), deps.ContactUC, pages, cfg.MessageSentDisplay, cfg.IsProduction(), formOrigins)
	NewSEOHandler(r, deps.SEOUC)
	if deps.Thumbnails != nil {
		NewThumbnailHandler(r, deps.Thumbnails)
	}
	if cfg.AssetsDir != "" {
		r.Static("/static", cfg.AssetsDir)
	}

	NewHealthHandler(v1, deps.HealthUC)
	NewContentHandler(v1, deps.ContentUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

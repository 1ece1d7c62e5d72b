package v1

import (
	"errors"
	"net/http"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	seoUC domain.SEOUsecase
}

// NewSEOHandler registers the crawler endpoints at the site root
func NewSEOHandler(r gin.IRoutes, seoUC domain.SEOUsecase) {
	h := &SEOHandler{seoUC: seoUC}
	r.GET("/robots.txt", h.Robots)
	r.GET("/sitemap-index.xml", h.SitemapIndex)
	r.GET("/sitemap-0.xml", h.Sitemap)
}

func (h *SEOHandler) Robots(c *gin.Context) {
	body, err := h.seoUC.RobotsTxt(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *SEOHandler) SitemapIndex(c *gin.Context) {
	body, err := h.seoUC.SitemapIndex(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := h.seoUC.Sitemap(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// fail answers crawlers in plain text rather than the JSON envelope
func (h *SEOHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrSiteURLNotConfigured) {
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Site URL not available"))
		return
	}
	c.Error(apperror.Internal(err))
}

package v1

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/view"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ContactSentCookie marks a successful submission for the length of the
// success banner
const ContactSentCookie = "contact_sent"

type PageHandler struct {
	contentUC domain.ContentUsecase
	templates *template.Template
	now       func() time.Time
}

// NewPageHandler registers the landing page
func NewPageHandler(r gin.IRoutes, contentUC domain.ContentUsecase, templates *template.Template, now func() time.Time) *PageHandler {
	h := &PageHandler{contentUC: contentUC, templates: templates, now: now}
	r.GET("/", h.Index)
	return h
}

// Index renders the landing page. ?menu=open renders the mobile menu expanded.
func (h *PageHandler) Index(c *gin.Context) {
	submission := domain.Submission{Values: map[string]string{}}
	if _, err := c.Cookie(ContactSentCookie); err == nil {
		submission.MessageSent = true
	}
	h.render(c, http.StatusOK, submission)
}

func (h *PageHandler) page(c *gin.Context, submission domain.Submission) view.Page {
	page := view.NewPage(h.contentUC.Content(c.Request.Context()), h.now())
	if c.Query("menu") == "open" {
		page.Nav = page.Nav.Toggle()
	}
	return page.WithSubmission(submission, middleware.CSRFToken(c))
}

// render writes the landing page with the given contact state. The page is
// buffered so template errors still produce a clean error response.
func (h *PageHandler) render(c *gin.Context, status int, submission domain.Submission) {
	var buf bytes.Buffer
	if err := view.Render(&buf, h.templates, h.page(c, submission)); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

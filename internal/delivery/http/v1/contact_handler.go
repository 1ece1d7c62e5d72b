package v1

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ContactHandler struct {
	contactUC     domain.ContactUsecase
	pages         *PageHandler
	bannerSeconds int
	secureCookies bool
	// origins allowed to post the exported form to the api endpoint
	formOrigins map[string]bool
}

// NewContactHandler registers the HTML form endpoint on site and the JSON
// endpoint on api. Both are public. The api endpoint also takes form posts
// from the statically exported page when they come from one of formOrigins.
func NewContactHandler(site gin.IRoutes, api gin.IRoutes, contactUC domain.ContactUsecase, pages *PageHandler, banner time.Duration, secureCookies bool, formOrigins []string) {
	handler := &ContactHandler{
		contactUC:     contactUC,
		pages:         pages,
		bannerSeconds: max(1, int(banner.Seconds())),
		secureCookies: secureCookies,
		formOrigins:   make(map[string]bool, len(formOrigins)),
	}
	for _, o := range formOrigins {
		if origin := originOf(o); origin != "" {
			handler.formOrigins[origin] = true
		}
	}

	site.POST("/contact", handler.SubmitForm)
	api.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Success      303      {string}  string  "form post from the exported site"
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response  "form post from an unknown origin"
// @Failure      422      {object}  response.Response  "error holds {field: code}"
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var returnTo string
	if isFormPost(c) {
		var ok bool
		if returnTo, ok = h.exportReturnURL(c); !ok {
			c.Error(apperror.Forbidden("Form origin not allowed"))
			return
		}
	}

	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err == nil {
		security.DefaultLogger().LogContactSent(c.Request.Context(), req.Email, meta(c))
		if returnTo != "" {
			c.Redirect(http.StatusSeeOther, returnTo)
			return
		}
		response.Success(c, http.StatusOK, domain.MessageSent, nil)
		return
	}

	var validationErrs domain.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		security.DefaultLogger().LogContactValidationFailed(c.Request.Context(), validationErrs.Codes(), meta(c))
		c.Error(apperror.UnprocessableEntity("Validation failed", validationErrs.Codes()))
	case errors.Is(err, domain.ErrDeliveryNotConfigured):
		c.Error(apperror.ServiceUnavailable(domain.MessageNotConfigured, err))
	default:
		security.DefaultLogger().LogDeliveryFailed(c.Request.Context(), req.Email, err, meta(c))
		c.Error(apperror.BadGateway(domain.MessageDeliveryError, err))
	}
}

// SubmitForm handles the no-script form post. Success redirects back to the
// contact section; anything else re-renders the page with the form state.
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	form := h.contactUC.NewForm()
	defer form.Close()

	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.render(c, http.StatusBadRequest, form.State())
		return
	}

	for field, value := range req.Values() {
		form.UpdateField(field, value)
	}

	err := form.Submit(c.Request.Context())
	if err == nil {
		security.DefaultLogger().LogContactSent(c.Request.Context(), req.Email, meta(c))
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ContactSentCookie, "1", h.bannerSeconds, "/", "", h.secureCookies, true)
		c.Redirect(http.StatusSeeOther, "/#contact")
		return
	}

	status := http.StatusBadGateway
	var validationErrs domain.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		security.DefaultLogger().LogContactValidationFailed(c.Request.Context(), validationErrs.Codes(), meta(c))
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDeliveryNotConfigured):
		status = http.StatusServiceUnavailable
	default:
		security.DefaultLogger().LogDeliveryFailed(c.Request.Context(), req.Email, err, meta(c))
	}
	h.pages.render(c, status, form.State())
}

// exportReturnURL resolves where a form post from the exported page goes
// after delivery. It reports false unless the post came from a known origin.
func (h *ContactHandler) exportReturnURL(c *gin.Context) (string, bool) {
	origin := originOf(c.GetHeader("Origin"))
	referer, _ := url.Parse(c.GetHeader("Referer"))
	if origin == "" && referer != nil {
		origin = originOf(referer.String())
	}
	if !h.formOrigins[origin] {
		return "", false
	}
	if referer != nil && originOf(referer.String()) == origin {
		referer.Fragment = ""
		referer.RawFragment = ""
		return referer.String() + "#contact", true
	}
	return origin + "/#contact", true
}

func isFormPost(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == binding.MIMEPOSTForm || ct == binding.MIMEMultipartPOSTForm
}

// originOf returns scheme://host of an absolute URL, or "" for anything else
func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func meta(c *gin.Context) security.RequestMeta {
	return security.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: middleware.GetRequestID(c),
	}
}

package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	v1 "go-portfolio-site/internal/delivery/http/v1"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/sitegen"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/internal/view"
	"go-portfolio-site/pkg/thumbnail"
	"go-portfolio-site/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Mock Email Sender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, req domain.DeliveryRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockEmailSender) IsConfigured() bool {
	return m.Called().Bool(0)
}

type staticSource struct {
	content *domain.SiteContent
}

func (s staticSource) Current() *domain.SiteContent { return s.content }

type fakeThumbnails map[string][]byte

func (f fakeThumbnails) Thumbnail(ref string) ([]byte, error) {
	if strings.Contains(ref, "..") {
		return nil, thumbnail.ErrInvalidPath
	}
	data, ok := f[strings.TrimPrefix(ref, "/")]
	if !ok {
		return nil, fmt.Errorf("read: %w", os.ErrNotExist)
	}
	return data, nil
}

func sampleContent() *domain.SiteContent {
	return &domain.SiteContent{
		Profile: domain.SiteProfile{Name: "Jane Doe", Headline: "Software Engineer"},
		Projects: []domain.Project{
			{Title: "Shop", Thumbnail: "images/shop.png"},
			{Title: "Tracker"},
		},
		Skills: []domain.Skill{
			{Category: domain.SkillLanguages, Title: "Go"},
			{Category: domain.SkillTools, Title: "Git"},
		},
	}
}

type testServer struct {
	router *gin.Engine
	sender *MockEmailSender
}

func newTestServer(t *testing.T, siteURL string, contactLimit int) *testServer {
	t.Helper()
	cfg := &config.Config{
		Environment:              "test",
		SiteURL:                  siteURL,
		MessageSentDisplay:       7 * time.Second,
		RateLimitContactLimit:    contactLimit,
		RateLimitGlobalThreshold: 0,
	}
	sender := &MockEmailSender{}
	source := staticSource{content: sampleContent()}
	noRedis := func() *goredis.Client { return nil }
	limit := middleware.ContactRateLimitConfig(cfg)
	limit.Window = 10 * time.Minute
	limit.RedisClient = noRedis

	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:    usecase.NewContactUsecase(sender, validation.New(), usecase.ContactOptions{}),
		ContentUC:    usecase.NewContentUsecase(source),
		SEOUC:        usecase.NewSEOUsecase(siteURL),
		HealthUC:     usecase.NewHealthUsecase(sender, source),
		Templates:    view.MustTemplates(),
		Thumbnails:   fakeThumbnails{"images/shop.png": []byte("jpeg-bytes")},
		Config:       cfg,
		Now:          func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) },
		ContactLimit: &limit,
	})
	return &testServer{router: router, sender: sender}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postJSON(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

// csrfToken fetches the landing page and returns the issued token
func (s *testServer) csrfToken(t *testing.T) string {
	t.Helper()
	w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CSRFTokenCookieName {
			return c.Value
		}
	}
	t.Fatal("no csrf cookie issued")
	return ""
}

func (s *testServer) postForm(token string, values url.Values) *httptest.ResponseRecorder {
	values.Set(middleware.CSRFTokenFormField, token)
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: token})
	return s.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestContactJSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(true)
		s.sender.On("Send", mock.Anything, mock.MatchedBy(func(r domain.DeliveryRequest) bool {
			return r.Fields[domain.FieldName] == "Jane" && r.Fields[domain.FieldEmail] == "jane@example.com"
		})).Return(nil).Once()

		w := s.postJSON(`{"from_name":" Jane ","from_email":"jane@example.com","message":"Hello"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, domain.MessageSent, resp.Message)
		s.sender.AssertExpectations(t)
	})

	t.Run("Validation errors", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)

		w := s.postJSON(`{"from_name":"","from_email":"not-an-email","message":"   "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, map[string]interface{}{
			domain.FieldName:    domain.CodeRequired,
			domain.FieldEmail:   domain.CodeInvalidFormat,
			domain.FieldMessage: domain.CodeRequired,
		}, decode(t, w).Error)
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Delivery failure", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(true)
		s.sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("status 500")).Once()

		w := s.postJSON(`{"from_name":"Jane","from_email":"jane@example.com","message":"Hello"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, domain.MessageDeliveryError, decode(t, w).Message)
		assert.NotContains(t, w.Body.String(), "status 500")
	})

	t.Run("Not configured", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(false)

		w := s.postJSON(`{"from_name":"Jane","from_email":"jane@example.com","message":"Hello"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		assert.Equal(t, http.StatusBadRequest, s.postJSON(`{"from_name":`).Code)
	})

	t.Run("Rate limited", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 2)
		body := `{"from_name":"","from_email":"","message":""}`
		assert.Equal(t, http.StatusUnprocessableEntity, s.postJSON(body).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, s.postJSON(body).Code)
		assert.Equal(t, http.StatusTooManyRequests, s.postJSON(body).Code)
	})
}

func TestContactForm(t *testing.T) {
	t.Run("Success redirects and shows the banner", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(true)
		s.sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		token := s.csrfToken(t)

		w := s.postForm(token, url.Values{
			domain.FieldName:    {"Jane"},
			domain.FieldEmail:   {"jane@example.com"},
			domain.FieldMessage: {"Hello"},
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/#contact", w.Header().Get("Location"))

		var sent *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == v1.ContactSentCookie {
				sent = c
			}
		}
		require.NotNil(t, sent)
		assert.Equal(t, 7, sent.MaxAge)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sent)
		page := s.do(req)
		assert.Contains(t, page.Body.String(), template.HTMLEscapeString(domain.MessageSent))
	})

	t.Run("Validation errors re-render the form", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		token := s.csrfToken(t)

		w := s.postForm(token, url.Values{
			domain.FieldName:    {"Jane"},
			domain.FieldEmail:   {"jane@"},
			domain.FieldMessage: {""},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, domain.MessageInvalidEmail)
		assert.Contains(t, body, domain.MessageRequired)
		assert.Contains(t, body, `value="Jane"`)
		assert.Contains(t, body, token)
	})

	t.Run("Delivery failure keeps the values", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(true)
		s.sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
		token := s.csrfToken(t)

		w := s.postForm(token, url.Values{
			domain.FieldName:    {"Jane"},
			domain.FieldEmail:   {"jane@example.com"},
			domain.FieldMessage: {"Hello"},
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), domain.MessageDeliveryError)
		assert.Contains(t, w.Body.String(), `value="jane@example.com"`)
	})

	t.Run("Unreadable body re-renders the page", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		token := s.csrfToken(t)

		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"from_name":`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.CSRFTokenHeaderName, token)
		req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: token})
		w := s.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `id="contact"`)
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Missing CSRF token is rejected", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("from_name=Jane"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := s.do(req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

var formAction = regexp.MustCompile(`<form method="post" action="([^"]+)"`)

// exportedForm builds the static site and returns the contact form target
func exportedForm(t *testing.T) string {
	t.Helper()
	out := t.TempDir()
	builder := &sitegen.Builder{
		Content:   sampleContent(),
		SEO:       usecase.NewSEOUsecase("https://example.com"),
		Templates: view.MustTemplates(),
	}
	_, err := builder.Build(context.Background(), out)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(index), middleware.CSRFTokenFormField)
	m := formAction.FindStringSubmatch(string(index))
	require.Len(t, m, 2)
	return m[1]
}

func postExported(s *testServer, action, origin string) *httptest.ResponseRecorder {
	values := url.Values{
		domain.FieldName:    {"Jane"},
		domain.FieldEmail:   {"jane@example.com"},
		domain.FieldMessage: {"Hello"},
	}
	req := httptest.NewRequest(http.MethodPost, action, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if origin != "" {
		req.Header.Set("Origin", origin)
		req.Header.Set("Referer", origin+"/portfolio/")
	}
	return s.do(req)
}

func TestExportedContactForm(t *testing.T) {
	action := exportedForm(t)
	assert.Equal(t, "/v1/contact", action)

	t.Run("Delivers and returns to the page", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		s.sender.On("IsConfigured").Return(true)
		s.sender.On("Send", mock.Anything, mock.MatchedBy(func(r domain.DeliveryRequest) bool {
			return r.Fields[domain.FieldName] == "Jane" && r.Fields[domain.FieldMessage] == "Hello"
		})).Return(nil).Once()

		w := postExported(s, action, "https://example.com")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "https://example.com/portfolio/#contact", w.Header().Get("Location"))
		s.sender.AssertExpectations(t)
	})

	t.Run("Reports validation errors as JSON", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)
		req := httptest.NewRequest(http.MethodPost, action, strings.NewReader("from_name=Jane&from_email=jane%40&message="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Origin", "https://example.com")
		w := s.do(req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, map[string]interface{}{
			domain.FieldEmail:   domain.CodeInvalidFormat,
			domain.FieldMessage: domain.CodeRequired,
		}, decode(t, w).Error)
	})

	t.Run("Rejects unknown origins", func(t *testing.T) {
		s := newTestServer(t, "https://example.com", 5)

		for _, origin := range []string{"https://evil.example.org", ""} {
			w := postExported(s, action, origin)
			assert.Equal(t, http.StatusForbidden, w.Code, origin)
		}
		s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestPage(t *testing.T) {
	s := newTestServer(t, "https://example.com", 5)

	w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "2026")
	assert.NotContains(t, body, "message-sent")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	open := s.do(httptest.NewRequest(http.MethodGet, "/?menu=open", nil))
	assert.Contains(t, open.Body.String(), "checked")
	assert.NotContains(t, body, "checked")
}

func TestSEO(t *testing.T) {
	s := newTestServer(t, "https://example.com", 5)

	w := s.do(httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "User-agent: *\nAllow: /\nDisallow: /~partytown/\nSitemap: https://example.com/sitemap-index.xml\n", w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/sitemap-index.xml", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>https://example.com/sitemap-0.xml</loc>")

	w = s.do(httptest.NewRequest(http.MethodGet, "/sitemap-0.xml", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>https://example.com/</loc>")

	missing := newTestServer(t, "", 5)
	for _, path := range []string{"/robots.txt", "/sitemap-index.xml", "/sitemap-0.xml"} {
		w := missing.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, "Site URL not available", w.Body.String(), path)
	}
}

func TestContentAPI(t *testing.T) {
	s := newTestServer(t, "https://example.com", 5)

	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe", decode(t, w).Data.(map[string]interface{})["name"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/projects", nil))
	assert.Len(t, decode(t, w).Data, 2)

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/projects/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tracker", decode(t, w).Data.(map[string]interface{})["title"])

	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodGet, "/v1/projects/9", nil)).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(httptest.NewRequest(http.MethodGet, "/v1/projects/abc", nil)).Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/v1/skills?category=tools", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data, 1)

	assert.Equal(t, http.StatusBadRequest, s.do(httptest.NewRequest(http.MethodGet, "/v1/skills?category=hobbies", nil)).Code)
}

func TestThumbnails(t *testing.T) {
	s := newTestServer(t, "https://example.com", 5)

	w := s.do(httptest.NewRequest(http.MethodGet, "/thumbnails/images/shop.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodGet, "/thumbnails/images/missing.png", nil)).Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "https://example.com", 5)
	s.sender.On("IsConfigured").Return(false)

	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "unconfigured", data["email"])
}

package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenFormField is the hidden form field carrying the token
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenHeaderName is the header alternative to the form field
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every request gets a csrf_token cookie. State changing requests must echo
// the cookie value in the csrf_token form field or the X-CSRF-Token header.
// Paths listed in exempt skip validation but still receive the cookie.
func CSRFMiddleware(secure bool, exempt ...string) gin.HandlerFunc {
	exemptPaths := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = true
	}

	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", secure, true)
			csrfCookie = newToken
		}
		c.Set(string(domain.KeyCSRFToken), csrfCookie)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if exemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if submitted == "" {
			rejectCSRF(c, "missing", "Missing CSRF token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			rejectCSRF(c, "mismatch", "Invalid CSRF token")
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token the page must embed in its forms
func CSRFToken(c *gin.Context) string {
	return c.GetString(string(domain.KeyCSRFToken))
}

func rejectCSRF(c *gin.Context, reason, message string) {
	security.DefaultLogger().LogCSRFViolation(c.Request.Context(), reason, c.Request.URL.Path, requestMeta(c))
	response.Error(c, http.StatusForbidden, message, nil)
	c.Abort()
}

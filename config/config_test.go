package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SITE_URL", "https://example.com/")
	t.Setenv("EMAIL_PROVIDER", "EmailJS")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.SiteURL)
	assert.Equal(t, "emailjs", cfg.EmailProvider)
	assert.Equal(t, 7*time.Second, cfg.MessageSentDisplay)
	assert.Equal(t, 10*time.Minute, cfg.RateLimitContactWindow())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MESSAGE_SENT_DISPLAY_SECONDS", "5")
	t.Setenv("RATE_LIMIT_CONTACT_LIMIT", "not-a-number")
	t.Setenv("CONTENT_WATCH", "true")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.dev/, ,https://b.dev")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.MessageSentDisplay)
	assert.Equal(t, 5, cfg.RateLimitContactLimit, "invalid ints fall back to the default")
	assert.True(t, cfg.ContentWatch)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
}

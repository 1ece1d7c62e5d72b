package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Canonical public URL of the site (e.g. https://example.com). Robots and
	// sitemap endpoints answer 500 while it is empty.
	SiteURL string
	// Content
	ContentPath  string
	AssetsDir    string
	ContentWatch bool
	// Email delivery
	EmailProvider     string // "emailjs" or "smtp"
	EmailJSAPIURL     string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// How long the "message sent" banner stays visible
	MessageSentDisplay time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitContactLimit         int
	RateLimitContactWindowSeconds int
	RateLimitGlobalThreshold      int
	// CORS
	AllowedOrigins []string
	// Tracing
	OTLPEndpoint    string
	OTELServiceName string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored when the file does not exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		// Strip trailing slash so joined URLs never contain "//"
		SiteURL:      strings.TrimRight(getEnv("SITE_URL", ""), "/"),
		ContentPath:  getEnv("CONTENT_PATH", "content/site.yaml"),
		AssetsDir:    getEnv("ASSETS_DIR", "static"),
		ContentWatch: getEnvBool("CONTENT_WATCH", false),
		// Email delivery
		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "emailjs")),
		EmailJSAPIURL:     strings.TrimRight(getEnv("EMAILJS_API_URL", "https://api.emailjs.com"), "/"),
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Success banner lifetime
		MessageSentDisplay: time.Duration(getEnvInt("MESSAGE_SENT_DISPLAY_SECONDS", 7)) * time.Second,
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitContactLimit:         getEnvInt("RATE_LIMIT_CONTACT_LIMIT", 5),            // 5 messages
		RateLimitContactWindowSeconds: getEnvInt("RATE_LIMIT_CONTACT_WINDOW_SECONDS", 600), // per 10 minutes
		RateLimitGlobalThreshold:      getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),       // 300 requests per minute
		AllowedOrigins:                getEnvList("ALLOWED_ORIGINS"),
		// Tracing
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "portfolio-site"),
	}

	if cfg.SiteURL == "" {
		log.Println("WARNING: SITE_URL is missing. robots.txt and sitemap will answer 500.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RateLimitContactWindow returns the contact rate limit window as a duration
func (c *Config) RateLimitContactWindow() time.Duration {
	return time.Duration(c.RateLimitContactWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated environment variable, dropping empty items
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			items = append(items, item)
		}
	}
	return items
}

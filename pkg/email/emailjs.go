package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/domain"
)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSClient sends contact messages through the EmailJS REST API
type EmailJSClient struct {
	baseURL    string
	privateKey string
	httpClient *http.Client
}

// emailJSPayload is the body accepted by the EmailJS send endpoint
type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSClient creates a client for the configured EmailJS endpoint
func NewEmailJSClient(cfg *config.Config) *EmailJSClient {
	return &EmailJSClient{
		baseURL:    cfg.EmailJSAPIURL,
		privateKey: cfg.EmailJSPrivateKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *EmailJSClient) WithHTTPClient(hc *http.Client) *EmailJSClient {
	c.httpClient = hc
	return c
}

// Send posts the message to EmailJS. Any non-200 answer is a failure.
func (c *EmailJSClient) Send(ctx context.Context, req domain.DeliveryRequest) error {
	if req.ServiceID == "" || req.TemplateID == "" || req.PublicKey == "" {
		return domain.ErrDeliveryNotConfigured
	}

	body, err := json.Marshal(emailJSPayload{
		ServiceID:      req.ServiceID,
		TemplateID:     req.TemplateID,
		UserID:         req.PublicKey,
		AccessToken:    c.privateKey,
		TemplateParams: req.Fields,
	})
	if err != nil {
		return fmt.Errorf("failed to encode emailjs payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	return nil
}

// IsConfigured reports whether an endpoint is set. Identifiers travel with
// each request and are checked in Send.
func (c *EmailJSClient) IsConfigured() bool {
	return c.baseURL != ""
}

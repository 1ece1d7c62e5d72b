package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveryRequest() domain.DeliveryRequest {
	return domain.DeliveryRequest{
		ServiceID:  "service_1",
		TemplateID: "template_1",
		PublicKey:  "public_1",
		Fields: map[string]string{
			domain.FieldName:    "Jane Doe",
			domain.FieldEmail:   "jane@example.com",
			domain.FieldMessage: "Hello",
		},
	}
}

func TestEmailJSClientSend(t *testing.T) {
	t.Run("Should post the payload to the send endpoint", func(t *testing.T) {
		var got emailJSPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, emailJSSendPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte("OK"))
		}))
		defer srv.Close()

		client := NewEmailJSClient(&config.Config{EmailJSAPIURL: srv.URL, EmailJSPrivateKey: "secret"})
		err := client.Send(context.Background(), deliveryRequest())
		require.NoError(t, err)

		assert.Equal(t, "service_1", got.ServiceID)
		assert.Equal(t, "template_1", got.TemplateID)
		assert.Equal(t, "public_1", got.UserID)
		assert.Equal(t, "secret", got.AccessToken)
		assert.Equal(t, "Hello", got.TemplateParams[domain.FieldMessage])
	})

	t.Run("Should fail on non-200 answers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
		}))
		defer srv.Close()

		client := NewEmailJSClient(&config.Config{EmailJSAPIURL: srv.URL})
		err := client.Send(context.Background(), deliveryRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
		assert.Contains(t, err.Error(), "Public Key is invalid")
	})

	t.Run("Should refuse to send without identifiers", func(t *testing.T) {
		client := NewEmailJSClient(&config.Config{EmailJSAPIURL: "http://unused"})
		req := deliveryRequest()
		req.PublicKey = ""
		assert.ErrorIs(t, client.Send(context.Background(), req), domain.ErrDeliveryNotConfigured)
	})
}

func TestSMTPSenderSend(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "user@example.com",
		SMTPPassword:   "pw",
		ContactEmailTo: "owner@example.com",
	}

	t.Run("Should render and relay the message", func(t *testing.T) {
		sender := NewSMTPSender(cfg)
		var gotAddr string
		var gotMsg []byte
		sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr = addr
			gotMsg = msg
			assert.Equal(t, "user@example.com", from)
			assert.Equal(t, []string{"owner@example.com"}, to)
			return nil
		}

		require.NoError(t, sender.Send(context.Background(), deliveryRequest()))
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Contains(t, string(gotMsg), "Reply-To: jane@example.com")
		assert.Contains(t, string(gotMsg), "Jane Doe (jane@example.com)")
	})

	t.Run("Should keep the sender name inside the subject header", func(t *testing.T) {
		sender := NewSMTPSender(cfg)
		var gotMsg []byte
		sender.sendMail = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			gotMsg = msg
			return nil
		}

		req := deliveryRequest()
		req.Fields[domain.FieldName] = "Jane\r\nBcc: victim@example.org\r\nX-Injected: yes"
		require.NoError(t, sender.Send(context.Background(), req))

		headers, _, found := strings.Cut(string(gotMsg), "\r\n\r\n")
		require.True(t, found)
		for _, line := range strings.Split(headers, "\r\n") {
			assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
			assert.False(t, strings.HasPrefix(line, "X-Injected:"), line)
		}
		assert.Contains(t, headers, "Subject: Portfolio contact: Jane  Bcc: victim@example.org  X-Injected: yes")
	})

	t.Run("Should wrap relay errors", func(t *testing.T) {
		sender := NewSMTPSender(cfg)
		sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}
		err := sender.Send(context.Background(), deliveryRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Should report missing configuration", func(t *testing.T) {
		sender := NewSMTPSender(&config.Config{SMTPHost: "smtp.example.com"})
		assert.False(t, sender.IsConfigured())
		assert.ErrorIs(t, sender.Send(context.Background(), deliveryRequest()), domain.ErrDeliveryNotConfigured)
	})
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(&config.Config{EmailProvider: "smtp"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	s, err = NewSender(&config.Config{EmailProvider: "emailjs"})
	require.NoError(t, err)
	assert.IsType(t, &EmailJSClient{}, s)

	_, err = NewSender(&config.Config{EmailProvider: "carrier-pigeon"})
	assert.Error(t, err)
}

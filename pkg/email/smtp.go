package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/domain"
)

// SMTPSender relays contact messages through an SMTP server
type SMTPSender struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	sendMail  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
}

// NewSMTPSender creates a new SMTP sender from configuration
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername // Brevo accepts the login email as from address
	}
	return &SMTPSender{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		toEmail:   cfg.ContactEmailTo,
		sendMail:  smtp.SendMail,
	}
}

// contactEmailTemplate is the HTML template for contact form emails
var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New message from your portfolio</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #15803d; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="label">From:</div>
        <div>{{.SenderName}} ({{.SenderEmail}})</div>
        <div class="label">Message:</div>
        <div class="message-box">{{.Message}}</div>
        <div class="footer">
            <p>Sent from the contact form. Reply to: {{.SenderEmail}}</p>
        </div>
    </div>
</body>
</html>`))

// Send renders the contact email and hands it to the SMTP relay. Service and
// template identifiers are EmailJS concepts and are ignored here.
func (s *SMTPSender) Send(ctx context.Context, req domain.DeliveryRequest) error {
	if !s.IsConfigured() {
		return domain.ErrDeliveryNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := ContactEmailData{
		SenderName:  req.Fields[domain.FieldName],
		SenderEmail: req.Fields[domain.FieldEmail],
		Message:     req.Fields[domain.FieldMessage],
	}

	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := buildMessage(s.fromEmail, s.toEmail, data.SenderEmail, "Portfolio contact: "+data.SenderName, body.Bytes())

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the sender has valid SMTP configuration
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

// headerValue drops line breaks so a value cannot start a new header
var headerValue = strings.NewReplacer("\r", " ", "\n", " ")

// buildMessage constructs a MIME message with an HTML body
func buildMessage(from, to, replyTo, subject string, body []byte) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", headerValue.Replace(from))
	fmt.Fprintf(&msg, "To: %s\r\n", headerValue.Replace(to))
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", headerValue.Replace(replyTo))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue.Replace(subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)
	return msg.Bytes()
}

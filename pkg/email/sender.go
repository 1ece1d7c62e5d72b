package email

import (
	"fmt"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/domain"
)

// NewSender picks the delivery provider named by EMAIL_PROVIDER
func NewSender(cfg *config.Config) (domain.EmailSender, error) {
	switch cfg.EmailProvider {
	case "emailjs", "":
		return NewEmailJSClient(cfg), nil
	case "smtp":
		return NewSMTPSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

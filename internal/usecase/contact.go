package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-portfolio-site/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMessageSentDisplay is how long the success banner stays up
const DefaultMessageSentDisplay = 7 * time.Second

// DeliveryConfig carries the delivery API identifiers
type DeliveryConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// ContactOptions tunes the contact usecase
type ContactOptions struct {
	Delivery DeliveryConfig
	// MessageSentDisplay defaults to DefaultMessageSentDisplay
	MessageSentDisplay time.Duration
	// Clock defaults to the wall clock
	Clock Clock
}

// Clock schedules the success banner dismissal
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending dismissal
type Timer interface {
	Stop() bool
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type contactUsecase struct {
	sender   domain.EmailSender
	validate *validator.Validate
	delivery DeliveryConfig
	display  time.Duration
	clock    Clock
	tracer   trace.Tracer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender domain.EmailSender, validate *validator.Validate, opts ContactOptions) domain.ContactUsecase {
	if opts.MessageSentDisplay <= 0 {
		opts.MessageSentDisplay = DefaultMessageSentDisplay
	}
	if opts.Clock == nil {
		opts.Clock = wallClock{}
	}
	return &contactUsecase{
		sender:   sender,
		validate: validate,
		delivery: opts.Delivery,
		display:  opts.MessageSentDisplay,
		clock:    opts.Clock,
		tracer:   otel.Tracer("go-portfolio-site/contact"),
	}
}

// NewForm starts an empty submission
func (uc *contactUsecase) NewForm() domain.ContactForm {
	return newContactForm(uc)
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	form := uc.NewForm()
	defer form.Close()

	for field, value := range req.Values() {
		form.UpdateField(field, value)
	}
	return form.Submit(ctx)
}

// validateRequest runs the field rules. Blank fields report "required",
// a non-blank malformed email reports "invalid-format".
func (uc *contactUsecase) validateRequest(req *domain.ContactRequest) domain.ValidationErrors {
	err := uc.validate.Struct(req)
	if err == nil {
		return nil
	}

	errs := domain.ValidationErrors{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Misconfigured validator; treat every field as suspect rather than send
		for _, field := range domain.ContactFields {
			errs[field] = domain.ValidationError{Field: field, Code: domain.CodeRequired}
		}
		return errs
	}

	for _, fe := range fieldErrs {
		code := domain.CodeRequired
		if fe.Tag() == "contact_email" {
			code = domain.CodeInvalidFormat
		}
		errs[fe.Field()] = domain.ValidationError{Field: fe.Field(), Code: code}
	}
	return errs
}

// deliver makes the single call to the delivery API
func (uc *contactUsecase) deliver(ctx context.Context, req *domain.ContactRequest) error {
	ctx, span := uc.tracer.Start(ctx, "contact.deliver")
	defer span.End()

	if uc.sender == nil || !uc.sender.IsConfigured() {
		span.SetStatus(codes.Error, "not configured")
		return &domain.DeliveryError{Err: domain.ErrDeliveryNotConfigured}
	}

	span.SetAttributes(
		attribute.String("contact.service_id", uc.delivery.ServiceID),
		attribute.String("contact.template_id", uc.delivery.TemplateID),
		attribute.Int("contact.message_length", len(req.Message)),
	)

	err := uc.sender.Send(ctx, domain.DeliveryRequest{
		ServiceID:  uc.delivery.ServiceID,
		TemplateID: uc.delivery.TemplateID,
		PublicKey:  uc.delivery.PublicKey,
		Fields: map[string]string{
			domain.FieldName:    strings.TrimSpace(req.Name),
			domain.FieldEmail:   strings.TrimSpace(req.Email),
			domain.FieldMessage: strings.TrimSpace(req.Message),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return &domain.DeliveryError{Err: err}
	}
	return nil
}

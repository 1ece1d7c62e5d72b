package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Contact form field names. They double as form input names and as the
// template parameter names of the delivery API.
const (
	FieldName    = "from_name"
	FieldEmail   = "from_email"
	FieldMessage = "message"
	// FieldGeneral keys errors that do not belong to a single input
	FieldGeneral = "general"
)

// ContactFields lists the form fields in display order
var ContactFields = []string{FieldName, FieldEmail, FieldMessage}

// Validation error codes
const (
	CodeRequired      = "required"
	CodeInvalidFormat = "invalid-format"
)

var (
	// ErrDeliveryNotConfigured is returned when the delivery API credentials are missing
	ErrDeliveryNotConfigured = errors.New("email delivery is not configured")
	// ErrSubmissionInFlight is returned when a submit arrives while a send is still running
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// Messages shown next to the form
const (
	MessageRequired      = "This field is required"
	MessageInvalidEmail  = "Please enter a valid email address"
	MessageDeliveryError = "Failed to send message. Please try again later."
	MessageNotConfigured = "Form configuration error. Please try again later."
	MessageSent          = "Thanks for reaching out! I'll respond as soon as possible."
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"from_name" form:"from_name" validate:"notblank"`
	Email   string `json:"from_email" form:"from_email" validate:"notblank,contact_email"`
	Message string `json:"message" form:"message" validate:"notblank"`
}

// Values returns the request keyed by field name
func (r *ContactRequest) Values() map[string]string {
	return map[string]string{
		FieldName:    r.Name,
		FieldEmail:   r.Email,
		FieldMessage: r.Message,
	}
}

// ValidationError blocks a submission until the user corrects the field
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// Message returns the user facing text for the error
func (e ValidationError) Message() string {
	if e.Code == CodeInvalidFormat {
		return MessageInvalidEmail
	}
	return MessageRequired
}

// ValidationErrors is the per-field error set of one submission
type ValidationErrors map[string]ValidationError

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, v[field].Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Codes flattens the set to field -> code, the shape returned by the JSON API
func (v ValidationErrors) Codes() map[string]string {
	out := make(map[string]string, len(v))
	for field, e := range v {
		out[field] = e.Code
	}
	return out
}

// DeliveryError wraps a failure reported by the delivery API
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "email delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Submission is the state of one contact attempt. It is a value: every
// mutation produces a new snapshot.
type Submission struct {
	Values       map[string]string `json:"values"`
	Errors       map[string]string `json:"errors,omitempty"` // field (or "general") -> message
	IsSubmitting bool              `json:"is_submitting"`
	MessageSent  bool              `json:"message_sent"`
}

// Value returns the current value of a field
func (s Submission) Value(field string) string {
	return s.Values[field]
}

// Error returns the message displayed for a field, empty when it is valid
func (s Submission) Error(field string) string {
	return s.Errors[field]
}

// DeliveryRequest is what the delivery API receives
type DeliveryRequest struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Fields     map[string]string
}

// EmailSender delivers a contact message through a third-party provider
type EmailSender interface {
	Send(ctx context.Context, req DeliveryRequest) error
	IsConfigured() bool
}

// ContactForm drives one contact attempt
type ContactForm interface {
	UpdateField(field, value string)
	Submit(ctx context.Context) error
	State() Submission
	Close()
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// NewForm starts an empty submission
	NewForm() ContactForm
	// SendContactMessage validates and sends a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-portfolio-site/internal/domain"
)

// contactForm holds the state of one contact attempt
type contactForm struct {
	uc *contactUsecase

	mu           sync.Mutex
	values       map[string]string
	errors       map[string]string
	isSubmitting bool
	messageSent  bool
	dismiss      Timer
}

func newContactForm(uc *contactUsecase) *contactForm {
	return &contactForm{
		uc:     uc,
		values: emptyValues(),
		errors: map[string]string{},
	}
}

func emptyValues() map[string]string {
	values := make(map[string]string, len(domain.ContactFields))
	for _, field := range domain.ContactFields {
		values[field] = ""
	}
	return values
}

func isContactField(field string) bool {
	for _, known := range domain.ContactFields {
		if field == known {
			return true
		}
	}
	return false
}

// UpdateField stores the latest value; a non-blank value clears the field's error
func (f *contactForm) UpdateField(field, value string) {
	if !isContactField(field) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	if strings.TrimSpace(value) != "" {
		delete(f.errors, field)
	}
}

// Submit validates the current values and, when they pass, sends them once
func (f *contactForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.isSubmitting {
		f.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}

	req := &domain.ContactRequest{
		Name:    f.values[domain.FieldName],
		Email:   f.values[domain.FieldEmail],
		Message: f.values[domain.FieldMessage],
	}

	if errs := f.uc.validateRequest(req); len(errs) > 0 {
		f.errors = make(map[string]string, len(errs))
		for field, e := range errs {
			f.errors[field] = e.Message()
		}
		f.mu.Unlock()
		return errs
	}

	f.errors = map[string]string{}
	f.isSubmitting = true
	f.mu.Unlock()

	err := f.uc.deliver(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.isSubmitting = false

	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotConfigured) {
			f.errors[domain.FieldGeneral] = domain.MessageNotConfigured
		} else {
			f.errors[domain.FieldGeneral] = domain.MessageDeliveryError
		}
		return err
	}

	f.values = emptyValues()
	f.messageSent = true
	if f.dismiss != nil {
		f.dismiss.Stop()
	}
	f.dismiss = f.uc.clock.AfterFunc(f.uc.display, f.clearMessageSent)
	return nil
}

func (f *contactForm) clearMessageSent() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageSent = false
	f.dismiss = nil
}

// State returns a snapshot of the submission
func (f *contactForm) State() domain.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	var errs map[string]string
	if len(f.errors) > 0 {
		errs = make(map[string]string, len(f.errors))
		for k, v := range f.errors {
			errs[k] = v
		}
	}

	return domain.Submission{
		Values:       values,
		Errors:       errs,
		IsSubmitting: f.isSubmitting,
		MessageSent:  f.messageSent,
	}
}

// Close stops a pending banner dismissal
func (f *contactForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
}

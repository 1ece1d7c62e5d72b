package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	// Contact form
	"from_name":  "Your name",
	"from_email": "Your email",
	"message":    "Message",

	// Site content
	"base_url":    "Base URL",
	"name":        "Name",
	"headline":    "Headline",
	"title":       "Title",
	"label":       "Label",
	"url":         "URL",
	"live_url":    "Live demo URL",
	"github_url":  "Repository URL",
	"position":    "Position",
	"company":     "Company",
	"description": "Description",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	// Namespace keeps the position inside lists, e.g. SiteContent.projects[2].title
	where := e.Namespace()
	if i := strings.Index(where, "."); i >= 0 {
		where = where[i+1:]
	}

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s (%s): is required", label, where)

	case "url":
		return fmt.Sprintf("%s (%s): must be an absolute URL", label, where)

	case "contact_email", "email":
		return fmt.Sprintf("%s (%s): invalid email format", label, where)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s (%s): failed validation (%s)", label, where, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}

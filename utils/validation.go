package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{4,19}$`)

	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	jsEventRegex = regexp.MustCompile(`on\w+="[^"]*"`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateEmail checks if the email format is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks if the phone number format is valid
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// RequireField appends a field error when a required value is blank.
func RequireField(errs FieldValidationErrors, field, value string) FieldValidationErrors {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldValidationError{Field: field, Message: "is required"})
	}
	return errs
}

// Package forms holds the create/edit controllers for devices, licenses,
// and assignments. Each form validates locally, surfaces field errors
// inline, and refuses to re-enter submission while a request is in
// flight. All forms share the same lifecycle: idle → validating →
// (invalid, corrected by the user) | submitting → (success, closed) |
// (failure, back to idle with the error shown).
package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Form submission states.
const (
	StateIdle       = "idle"
	StateSubmitting = "submitting"
)

// ErrBusy is returned when Submit is called while a submission is
// already in flight.
var ErrBusy = errors.New("submission already in progress")

// FieldError is a single inline validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects field errors for a form. It satisfies error so a
// failed validation can flow back through Submit.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *Errors) HasErrors() bool {
	return len(e.Fields) > 0
}

// Field returns the message for a field, or "".
func (e *Errors) Field(field string) string {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

func requireField(e *Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

func validateEnum(e *Errors, field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

func validateDate(e *Errors, field, value string) {
	if value == "" {
		e.Add(field, "is required")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		e.Add(field, "must be a valid date (YYYY-MM-DD)")
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

package tasks

import (
	"strings"
)

// FieldError is one validation failure tied to a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects per-field validation failures for a write
// request. It implements error so it can cross the service boundary;
// the edge layer turns it into a 400 with the structured list.
type ValidationErrors []FieldError

// Error formats the failures as "validation failed: field: message; ...".
func (v ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, fe := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

// add appends a failure and returns the extended list.
func (v ValidationErrors) add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

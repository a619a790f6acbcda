package application

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrProviderNotConfigured is returned when the upstream credential is absent.
	ErrProviderNotConfigured = errors.New("application: provider credential not configured")
)

// ValidationError captures field level validation issues caught before any
// upstream call is made.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// UpstreamError carries a non-2xx response from the video provider or an AI
// engine. Status and body are forwarded to the caller verbatim.
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

// Error implements the error interface.
func (u *UpstreamError) Error() string {
	if u == nil {
		return ""
	}
	return fmt.Sprintf("%s returned HTTP %d: %s", u.Provider, u.Status, u.Body)
}

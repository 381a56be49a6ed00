// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"errors"
	"strings"
)

// ErrAdminKeyMismatch is the cause of every rejected admin sync. Missing
// and wrong keys are not distinguished to callers.
var ErrAdminKeyMismatch = errors.New("admin sync key missing or incorrect")

// ValidationError reports bad client input. It maps to 400.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// AuthError reports a failed credential check. It maps to 401.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "unauthorized"
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// describeFields joins field names for log output.
func describeFields(fields []string) string {
	return strings.Join(fields, ",")
}

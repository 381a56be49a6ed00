// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
)

// genericErrorMessage replaces error text in production 500 responses.
const genericErrorMessage = "An unexpected error occurred"

// ErrorResponse is the body of every non-2xx response except 429.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// RateLimitResponse is the body of a 429.
type RateLimitResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondJSON writes v with status. API responses are never cached.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// errorResponder maps handler errors onto the HTTP taxonomy.
type errorResponder struct {
	production bool
}

// respondError writes the response for err. Validation and auth errors carry
// their own message; anything else is a 500 whose detail is hidden in
// production.
func (e errorResponder) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		logging.Ctx(r.Context()).Debug().
			Str("fields", describeFields(validationErr.Fields)).
			Str("error", logging.SanitizeError(validationErr.Message)).
			Msg("Request validation failed")
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")

	message := err.Error()
	if e.production {
		message = genericErrorMessage
	}
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: message,
	})
}

// notFound answers unknown routes.
func notFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found", Path: r.URL.Path})
}

// methodNotAllowed answers known routes called with the wrong method.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed", Path: r.URL.Path})
}

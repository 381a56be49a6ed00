// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package validation wraps go-playground/validator v10 for query and request
struct validation.

A single validator instance is created on first use and shared; it caches
struct metadata and is safe for concurrent use. Field names in errors come
from the struct's query tag, falling back to the json tag and then the Go
field name, so messages match the parameter names clients send:

	type query struct {
	    Account string `query:"account" validate:"required"`
	    From    string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	}

	if err := validation.ValidateStruct(&q); err != nil {
	    // err.Error() == "account is required"
	}

Failures are returned as *RequestValidationError, which lists every failed
field and renders a single joined message.
*/
package validation

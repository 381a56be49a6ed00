// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package servicedesk

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when an attempt exceeds the per-attempt timeout.
	ErrTimeout = errors.New("servicedesk: request timed out")

	// ErrRequestFailed is returned when retries are exhausted without a
	// recorded cause.
	ErrRequestFailed = errors.New("servicedesk: request failed")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("servicedesk: circuit breaker open")
)

// StatusError reports a non-2xx response to a listing call. The response
// body is logged server-side and deliberately not carried here.
type StatusError struct {
	Resource   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("servicedesk %s request failed: %s", e.Resource, e.Status)
}

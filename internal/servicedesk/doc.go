// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package servicedesk is the HTTP client for the upstream helpdesk API.

The client holds the helpdesk auth token; it is sent only in the authtoken
request header and never logged or returned to callers.

# Request Policy

FetchWithRetry performs one logical request:

  - Each attempt waits on an outbound token bucket (SERVICEDESK_MAX_RPS) and
    runs under its own timeout (SERVICEDESK_TIMEOUT).
  - An attempt that hits its timeout fails the whole call with ErrTimeout.
    Timeouts are not retried; a stuck upstream is not assumed to be transient.
  - Other transport errors are retried up to SERVICEDESK_RETRIES times with
    delays of base, 2*base, 4*base... and a warning log per retry.
  - Non-2xx responses are returned, not treated as errors. Callers decide.
  - Attempts pass through a circuit breaker that counts transport failures.
    While it is open calls fail fast with ErrCircuitOpen.

# Listings

FetchAllAccounts pages through /api/v3/accounts 100 rows at a time and stops
when upstream reports no more rows or after maxPages pages, whichever comes
first. Hitting the page cap is not an error.

FetchAllRequests pages through /api/v3/requests for one account name until
upstream reports no more rows. It has no page cap.

Both listings are all-or-nothing: a non-2xx page returns a *StatusError and
discards every page fetched before it.
*/
package servicedesk

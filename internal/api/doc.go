// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package api provides the HTTP surface of the proxy.

The proxy holds the helpdesk auth token server-side and re-exposes a narrow,
read-mostly slice of the helpdesk API to browser clients.

Routes:

	GET  /health                                       liveness, 1000 req/min per IP
	GET  /metrics                                      Prometheus, when enabled
	GET  /api/integrations/servicedesk/accounts        all accounts, normalized
	GET  /api/integrations/servicedesk/requests        tickets for one account
	POST /api/integrations/servicedesk/accounts/sync   admin-keyed account refresh

The servicedesk routes share a per-IP limiter (RATE_LIMIT_REQUESTS per
RATE_LIMIT_WINDOW, default 60/min).

Middleware Stack:

Applied to every route, outermost first:

  - RequestID: X-Request-ID echo and logging context
  - RealIP: only when TRUST_PROXY is set
  - AccessLog and PrometheusMetrics
  - JSONRecoverer: panics become 500 JSON
  - APISecurityHeaders: nosniff, frame deny, no-store, HSTS behind TLS
  - CORS: unknown Origins get 403, known Origins get CORS headers
  - RequestSize: 1 MiB body cap
  - Compression

Error Responses:

Every failure is JSON. The handler-facing taxonomy is:

  - *ValidationError -> 400 {success:false, error}
  - *AuthError       -> 401 {success:false, error}
  - anything else    -> 500 {success:false, error, message}

In production the 500 message is a fixed string; elsewhere it is the error
text. Upstream response bodies and credentials never reach a response.
*/
package api

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package main is the entry point for the ServiceDesk proxy.

The proxy sits between a browser dashboard and a ManageEngine-style
ServiceDesk Plus v3 API. It holds the upstream authtoken, paginates the
accounts and requests listings, filters requests by date range and excluded
technicians, and returns a normalized JSON shape. The browser never sees
the token.

# Process Layout

	servicedesk-proxy (root supervisor)
	└── api-layer
	    └── http-server (chi router)

Startup order:

 1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, level and format from LOG_LEVEL / LOG_FORMAT
 3. Upstream client: retries, circuit breaker, outbound pacing
 4. Router: CORS, rate limiting, security headers, metrics
 5. Supervisor tree: runs the HTTP server until SIGINT or SIGTERM

# Configuration

Required:
  - SERVICEDESK_BASE_URL: upstream base URL, e.g. https://helpdesk.example.com
  - SERVICEDESK_AUTHTOKEN: upstream API token
  - ADMIN_SYNC_KEY: key for POST /accounts/sync, at least 32 characters

Common optional settings:
  - PORT: listen port (default 3001)
  - ALLOWED_ORIGINS: comma-separated browser origins
  - EXCLUDED_TECHNICIANS: comma-separated technician names to hide
  - NODE_ENV: "production" hides internal error detail from clients

A configuration error is fatal: the process logs it and exits with status 1.

# Endpoints

	GET  /health
	GET  /metrics                                   (when METRICS_ENABLED)
	GET  /api/integrations/servicedesk/accounts
	GET  /api/integrations/servicedesk/requests?account=&from=&to=
	POST /api/integrations/servicedesk/accounts/sync

# Example

	export SERVICEDESK_BASE_URL=https://helpdesk.example.com
	export SERVICEDESK_AUTHTOKEN=your-token
	export ALLOWED_ORIGINS=https://dashboard.example.com
	./servicedesk-proxy
*/
package main

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package config loads and validates the proxy's configuration.

Configuration is layered with koanf v2. Later layers override earlier ones:

 1. Defaults built from defaultConfig()
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/servicedesk-proxy/config.yaml)
 3. Environment variables, mapped explicitly in envTransformFunc

Environment variables not listed in the mapping are ignored.

# Required Settings

  - SERVICEDESK_BASE_URL: helpdesk base URL, http or https, no query string
  - SERVICEDESK_AUTHTOKEN: helpdesk API token; never leaves the server
  - ADMIN_SYNC_KEY: shared secret for POST /accounts/sync, at least 32 characters

# Optional Settings

Server:
  - PORT or HTTP_PORT: listen port (default: 3001)
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: server read/write timeout (default: 60s)
  - NODE_ENV or ENVIRONMENT: development, production or test (default: development)
  - TRUST_PROXY: take the client IP from X-Forwarded-For (default: false)

Upstream:
  - SERVICEDESK_TIMEOUT: per-attempt timeout (default: 15s)
  - SERVICEDESK_RETRIES: retries after the first attempt (default: 2)
  - SERVICEDESK_RETRY_BASE_DELAY: first backoff delay, doubled per attempt (default: 1s)
  - SERVICEDESK_ACCOUNTS_MAX_PAGES: page cap for the accounts listing (default: 10)
  - SERVICEDESK_MAX_RPS: outbound request rate, 0 disables pacing (default: 10)

Security:
  - ALLOWED_ORIGINS: comma-separated browser origin allowlist (default: none)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: per-IP limit (default: 60 per 1m)
  - DISABLE_RATE_LIMIT: turn the limiter off (default: false)

Filtering:
  - EXCLUDED_TECHNICIANS: comma-separated technician names hidden from /requests

Observability:
  - METRICS_ENABLED: expose /metrics (default: true)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config

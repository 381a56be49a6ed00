// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package metrics registers the proxy's Prometheus collectors.

Collectors are created with promauto on the default registry and exposed by
the /metrics route when METRICS_ENABLED is true.

API metrics:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}
  - api_cors_rejections_total
  - admin_sync_attempts_total{result}

Upstream metrics:
  - servicedesk_requests_total{resource,outcome}
  - servicedesk_request_duration_seconds{resource}
  - servicedesk_retries_total{resource}
  - servicedesk_pages_fetched_total{resource}

Circuit breaker metrics:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Endpoint labels use chi route patterns, not raw paths, so label cardinality
stays bounded.
*/
package metrics

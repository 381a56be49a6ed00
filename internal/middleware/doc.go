// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package middleware provides the infrastructure HTTP middleware shared by the
API router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured entry per request, slow requests as warnings
  - PrometheusMetrics: request counts and latency labelled by chi route pattern
  - Compression: gzip for clients that accept it

All middleware use the standard func(http.Handler) http.Handler shape so
they compose with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

Route patterns are read after the handler runs, so PrometheusMetrics must be
mounted on the chi router itself rather than wrapped around it.
*/
package middleware

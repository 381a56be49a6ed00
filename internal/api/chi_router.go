// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/servicedesk-proxy/internal/config"
	"github.com/tomtom215/servicedesk-proxy/internal/middleware"
)

// maxRequestBodySize caps inbound bodies. No endpoint reads one.
const maxRequestBodySize = 1 << 20

// ServiceDeskPrefix is the mount point of the proxied endpoints.
const ServiceDeskPrefix = "/api/integrations/servicedesk"

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	trustProxy     bool
	metricsEnabled bool
	production     bool
}

// NewRouter builds a Router from configuration and an upstream fetcher.
func NewRouter(cfg *config.Config, fetcher Fetcher) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.AllowedOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	return &Router{
		handler:        NewHandler(cfg, fetcher),
		chiMiddleware:  NewChiMiddleware(mwConfig),
		trustProxy:     cfg.Server.TrustProxy,
		metricsEnabled: cfg.Metrics.Enabled,
		production:     cfg.IsProduction(),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	if router.trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(JSONRecoverer(router.production))
	r.Use(APISecurityHeaders())
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled
	r.Use(chimiddleware.RequestSize(maxRequestBodySize))
	r.Use(middleware.Compression)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Health and Metrics
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/health", router.handler.Health)
		if router.metricsEnabled {
			// Compression middleware already gzips; avoid double encoding.
			r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{DisableCompression: true},
			))
		}
	})

	// ========================
	// ServiceDesk Endpoints
	// ========================
	r.Route(ServiceDeskPrefix, func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/accounts", router.handler.Accounts)
		r.Get("/requests", router.handler.Requests)
		r.Post("/accounts/sync", router.handler.SyncAccounts)
	})

	return r
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/metrics"
)

// AdminSyncKeyHeader carries the shared admin secret for account sync.
const AdminSyncKeyHeader = "X-Admin-Sync-Key"

// ChiMiddlewareConfig holds configuration for the middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns the defaults. No origin is allowed
// until one is configured.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		CORSAllowedHeaders: []string{"Accept", "Content-Type", AdminSyncKeyHeader, "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID"},
		CORSMaxAge:         600,

		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddleware builds chi-compatible middleware from one configuration.
type ChiMiddleware struct {
	config   *ChiMiddlewareConfig
	origins  map[string]struct{}
	cors     func(http.Handler) http.Handler
	security *logging.SecurityLogger
}

// NewChiMiddleware creates the middleware factory. A nil config uses defaults.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	// The guard and go-chi/cors must agree on the allowlist.
	origins := make(map[string]struct{}, len(config.CORSAllowedOrigins))
	allowed := make([]string, 0, len(config.CORSAllowedOrigins))
	for _, o := range config.CORSAllowedOrigins {
		n := normalizeOrigin(o)
		if _, dup := origins[n]; dup || n == "" {
			continue
		}
		origins[n] = struct{}{}
		allowed = append(allowed, n)
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   config.CORSAllowedMethods,
		AllowedHeaders:   config.CORSAllowedHeaders,
		ExposedHeaders:   config.CORSExposedHeaders,
		AllowCredentials: false,
		MaxAge:           config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config:   config,
		origins:  origins,
		cors:     corsHandler,
		security: logging.NewSecurityLogger(),
	}
}

func normalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}

// originAllowed reports whether origin is on the allowlist.
func (m *ChiMiddleware) originAllowed(origin string) bool {
	_, ok := m.origins[normalizeOrigin(origin)]
	return ok
}

// CORS rejects requests whose Origin is not allowlisted with 403 and hands
// the rest to go-chi/cors. Requests without an Origin are non-browser
// clients and pass untouched.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		withHeaders := m.cors(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !m.originAllowed(origin) {
				metrics.RecordCORSRejection()
				m.security.LogCORSRejected(origin, remoteIP(r), r.URL.Path)
				respondJSON(w, http.StatusForbidden, ErrorResponse{
					Error:   "Origin not allowed",
					Message: "This origin is not permitted to access the API",
				})
				return
			}
			withHeaders.ServeHTTP(w, r)
		})
	}
}

// rateLimited writes the 429 body clients key on.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.RecordRateLimitHit(r.URL.Path)
	logging.Ctx(r.Context()).Warn().
		Str("ip", remoteIP(r)).
		Str("path", r.URL.Path).
		Msg("Rate limit exceeded")
	respondJSON(w, http.StatusTooManyRequests, RateLimitResponse{
		Error:   "Too many requests",
		Message: "Please try again later",
	})
}

// RateLimit limits each client IP to the configured requests per window.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitConfig{
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	})
}

// RateLimitConfig defines rate limit parameters for a route group.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimitHealth is permissive: monitors poll health often.
var RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

// RateLimitCustom returns a per-IP limiter with the given parameters. It is
// a no-op when rate limiting is disabled.
func (m *ChiMiddleware) RateLimitCustom(config RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		config.Requests,
		config.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

// RateLimitHealth returns the limiter for health and metrics endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitHealth)
}

// APISecurityHeaders adds the response hardening headers. HSTS is only sent
// when the request arrived over TLS, directly or via a TLS-terminating proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Cache-Control", "no-store")
			h.Set("Cross-Origin-Resource-Policy", "same-site")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// JSONRecoverer turns handler panics into 500 JSON responses.
func JSONRecoverer(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logging.Ctx(r.Context()).Error().
					Interface("panic", rvr).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Recovered from panic")

				message := "panic while handling request"
				if production {
					message = genericErrorMessage
				}
				respondJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal server error",
					Message: message,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// remoteIP strips the port from RemoteAddr.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
)

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	// Not parallel: swaps the global logger to observe the security event.
	var buf bytes.Buffer
	old := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	defer logging.SetLogger(old)

	fetcher := &fakeFetcher{accounts: sampleAccounts(1)}
	router := newTestRouter(t, testConfig(), fetcher)
	rec := doRequest(t, router, http.MethodGet, accountsPath, map[string]string{"Origin": "https://evil.example.com"})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var body ErrorResponse
	decodeBody(t, rec, &body)
	if body.Success || body.Error != "Origin not allowed" {
		t.Errorf("body = %+v", body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("rejected origin must not get Access-Control-Allow-Origin")
	}
	if a, _ := fetcher.calls(); a != 0 {
		t.Errorf("upstream calls = %d, want 0", a)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"event":"cors_rejected"`) || !strings.Contains(logs, "https://evil.example.com") {
		t.Errorf("expected cors_rejected security event, got %s", logs)
	}
}

func TestCORS_NormalizedAllowlistReachesCORSHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
	}{
		{"trailing slash", testOrigin + "/"},
		{"upper case", strings.ToUpper(testOrigin)},
		{"surrounding space", "  " + testOrigin + "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			cfg.Security.AllowedOrigins = []string{tt.configured}
			router := newTestRouter(t, cfg, &fakeFetcher{accounts: sampleAccounts(1)})

			rec := doRequest(t, router, http.MethodGet, accountsPath, map[string]string{"Origin": testOrigin})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, testOrigin)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		headers    map[string]string
		wantStatus []int
		wantACAO   string
	}{
		{
			name:       "no origin passes",
			method:     http.MethodGet,
			wantStatus: []int{http.StatusOK},
		},
		{
			name:       "allowed origin gets header",
			method:     http.MethodGet,
			headers:    map[string]string{"Origin": testOrigin},
			wantStatus: []int{http.StatusOK},
			wantACAO:   testOrigin,
		},
		{
			name:   "allowed origin preflight",
			method: http.MethodOptions,
			headers: map[string]string{
				"Origin":                         testOrigin,
				"Access-Control-Request-Method":  http.MethodPost,
				"Access-Control-Request-Headers": AdminSyncKeyHeader,
			},
			wantStatus: []int{http.StatusOK, http.StatusNoContent},
			wantACAO:   testOrigin,
		},
		{
			name:   "unknown origin preflight",
			method: http.MethodOptions,
			headers: map[string]string{
				"Origin":                        "https://evil.example.com",
				"Access-Control-Request-Method": http.MethodGet,
			},
			wantStatus: []int{http.StatusForbidden},
		},
		{
			name:       "origin match ignores case",
			method:     http.MethodGet,
			headers:    map[string]string{"Origin": "https://APP.example.com"},
			wantStatus: []int{http.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fetcher := &fakeFetcher{accounts: sampleAccounts(1)}
			rec := doRequest(t, newTestRouter(t, testConfig(), fetcher), tt.method, accountsPath, tt.headers)

			ok := false
			for _, s := range tt.wantStatus {
				if rec.Code == s {
					ok = true
				}
			}
			if !ok {
				t.Fatalf("status = %d, want one of %v (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantACAO != "" && rec.Header().Get("Access-Control-Allow-Origin") != tt.wantACAO {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", rec.Header().Get("Access-Control-Allow-Origin"), tt.wantACAO)
			}
		})
	}
}

func TestRateLimit_61stRequestRejected(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{accounts: sampleAccounts(1)}
	router := newTestRouter(t, testConfig(), fetcher)

	for i := 1; i <= 60; i++ {
		rec := doRequest(t, router, http.MethodGet, accountsPath, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, accountsPath, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request 61: status = %d, want 429", rec.Code)
	}
	if got, want := rec.Body.String(), `{"error":"Too many requests","message":"Please try again later"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if a, _ := fetcher.calls(); a != 60 {
		t.Errorf("upstream calls = %d, want 60", a)
	}

	// Health has its own budget.
	if rec := doRequest(t, router, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.RateLimitReqs = 1
	router := newTestRouter(t, cfg, &fakeFetcher{accounts: sampleAccounts(1)})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, accountsPath, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("198.51.100.1:1000"); code != http.StatusOK {
		t.Errorf("first ip: %d", code)
	}
	if code := send("198.51.100.2:1000"); code != http.StatusOK {
		t.Errorf("second ip: %d", code)
	}
	if code := send("198.51.100.1:2000"); code != http.StatusTooManyRequests {
		t.Errorf("first ip again: %d, want 429", code)
	}
}

func TestRateLimit_TrustProxy(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.RateLimitReqs = 1
	cfg.Server.TrustProxy = true
	router := newTestRouter(t, cfg, &fakeFetcher{accounts: sampleAccounts(1)})

	for _, ip := range []string{"203.0.113.10", "203.0.113.11"} {
		rec := doRequest(t, router, http.MethodGet, accountsPath, map[string]string{"X-Forwarded-For": ip})
		if rec.Code != http.StatusOK {
			t.Errorf("X-Forwarded-For %s: status = %d, want 200", ip, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.RateLimitReqs = 1
	cfg.Security.RateLimitDisabled = true
	router := newTestRouter(t, cfg, &fakeFetcher{accounts: sampleAccounts(1)})

	for i := 0; i < 5; i++ {
		if rec := doRequest(t, router, http.MethodGet, accountsPath, nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, testConfig(), &fakeFetcher{}), http.MethodGet, "/api/unknown", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got, want := rec.Body.String(), `{"success":false,"error":"Not found","path":"/api/unknown"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	rec := doRequest(t, newTestRouter(t, testConfig(), fetcher), http.MethodDelete, accountsPath, nil)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	var body ErrorResponse
	decodeBody(t, rec, &body)
	if body.Error != "Method not allowed" {
		t.Errorf("body = %+v", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig(), &fakeFetcher{})
	rec := doRequest(t, router, http.MethodGet, "/health", nil)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Cache-Control":          "no-store",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}

	rec = doRequest(t, router, http.MethodGet, "/health", map[string]string{"X-Forwarded-Proto": "https"})
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testConfig(), &fakeFetcher{})
	rec := doRequest(t, router, http.MethodGet, "/health", map[string]string{"X-Request-ID": "trace-42"})
	if got := rec.Header().Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/nope", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing on 404")
	}
}

func TestJSONRecoverer(t *testing.T) {
	t.Parallel()

	for _, production := range []bool{false, true} {
		cfg := testConfig()
		if production {
			cfg.Server.Environment = "production"
		}
		fetcher := &fakeFetcher{panicMsg: "nil map write"}
		rec := doRequest(t, newTestRouter(t, cfg, fetcher), http.MethodGet, accountsPath, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("production=%v: status = %d, want 500", production, rec.Code)
		}
		var body ErrorResponse
		decodeBody(t, rec, &body)
		if body.Success || body.Error != "Internal server error" {
			t.Errorf("production=%v: body = %+v", production, body)
		}
		if strings.Contains(rec.Body.String(), "nil map write") {
			t.Errorf("production=%v: panic value leaked: %s", production, rec.Body.String())
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, testConfig(), &fakeFetcher{}), http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}

	cfg := testConfig()
	cfg.Metrics.Enabled = false
	rec = doRequest(t, newTestRouter(t, cfg, &fakeFetcher{}), http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("disabled metrics status = %d, want 404", rec.Code)
	}
}

func TestResponsesNeverLeakToken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	router := newTestRouter(t, cfg, &fakeFetcher{accounts: sampleAccounts(2), requests: requestsFixture(t)})

	for _, target := range []string{"/health", accountsPath, requestsPath + "?account=Acme", "/missing"} {
		rec := doRequest(t, router, http.MethodGet, target, nil)
		if strings.Contains(rec.Body.String(), cfg.ServiceDesk.AuthToken) {
			t.Errorf("%s: body leaks auth token", target)
		}
		for k, vals := range rec.Header() {
			for _, v := range vals {
				if strings.Contains(v, cfg.ServiceDesk.AuthToken) {
					t.Errorf("%s: header %s leaks auth token", target, k)
				}
			}
		}
	}
}

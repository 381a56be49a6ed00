// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/servicedesk-proxy/internal/config"
	"github.com/tomtom215/servicedesk-proxy/internal/models"
)

const (
	testAdminKey     = "0123456789abcdef0123456789abcdef"
	testOrigin       = "https://app.example.com"
	accountsPath     = ServiceDeskPrefix + "/accounts"
	requestsPath     = ServiceDeskPrefix + "/requests"
	accountsSyncPath = ServiceDeskPrefix + "/accounts/sync"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        3001,
			Host:        "127.0.0.1",
			Timeout:     time.Minute,
			Environment: "test",
		},
		ServiceDesk: config.ServiceDeskConfig{
			BaseURL:          "https://helpdesk.example.com",
			AuthToken:        "upstream-token-never-leaves",
			Timeout:          15 * time.Second,
			Retries:          2,
			RetryBaseDelay:   time.Second,
			AccountsMaxPages: 10,
		},
		Security: config.SecurityConfig{
			AllowedOrigins:  []string{testOrigin},
			AdminSyncKey:    testAdminKey,
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Filter: config.FilterConfig{
			ExcludedTechnicians: []string{"kristian m matias"},
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

// fakeFetcher records calls and returns canned data.
type fakeFetcher struct {
	mu           sync.Mutex
	accounts     []models.NormalizedAccount
	requests     []models.RawTicket
	err          error
	panicMsg     string
	accountCalls int
	requestCalls int
	lastAccount  string
	lastMaxPages int
}

func (f *fakeFetcher) FetchAllAccounts(_ context.Context, maxPages int) ([]models.NormalizedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	f.lastMaxPages = maxPages
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts, nil
}

func (f *fakeFetcher) FetchAllRequests(_ context.Context, account string) ([]models.RawTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestCalls++
	f.lastAccount = account
	if f.err != nil {
		return nil, f.err
	}
	return f.requests, nil
}

func (f *fakeFetcher) calls() (accounts, requests int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accountCalls, f.requestCalls
}

func newTestRouter(t *testing.T, cfg *config.Config, fetcher Fetcher) http.Handler {
	t.Helper()
	return NewRouter(cfg, fetcher).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func strPtr(s string) *string { return &s }

func sampleAccounts(n int) []models.NormalizedAccount {
	out := make([]models.NormalizedAccount, n)
	for i := range out {
		out[i] = models.NormalizedAccount{
			ExternalID: strconv.Itoa(i + 1),
			Name:       strPtr("Account " + strconv.Itoa(i+1)),
			IsActive:   i%2 == 0,
		}
	}
	return out
}

func millis(t *testing.T, ts string) json.Number {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t.Fatalf("parse %s: %v", ts, err)
	}
	return json.Number(strconv.FormatInt(parsed.UnixMilli(), 10))
}

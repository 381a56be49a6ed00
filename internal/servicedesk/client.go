// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package servicedesk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/servicedesk-proxy/internal/config"
	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/metrics"
)

const (
	// authTokenHeader carries the helpdesk API token.
	authTokenHeader = "authtoken"

	// acceptHeader selects the v3 JSON representation.
	acceptHeader = "application/vnd.manageengine.sdp.v3+json"

	// maxResponseBodySize bounds how much of a response is buffered.
	maxResponseBodySize = 16 << 20

	// maxErrorBodySize bounds how much of an error body is logged.
	maxErrorBodySize = 64 * 1024
)

// Request describes one logical upstream call.
type Request struct {
	Method string
	URL    string

	// Resource labels metrics and logs, e.g. "accounts".
	Resource string
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client talks to the helpdesk API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	authToken      string
	httpClient     *http.Client
	timeout        time.Duration
	retries        int
	retryBaseDelay time.Duration
	limiter        *rate.Limiter // nil disables pacing
	breaker        *circuitBreaker
}

// NewClient creates a client from the upstream configuration.
func NewClient(cfg *config.ServiceDeskConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		// Per-attempt deadlines come from the request context.
		httpClient:     &http.Client{},
		timeout:        cfg.Timeout,
		retries:        cfg.Retries,
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        newLimiter(cfg.MaxRequestsPerSecond),
		breaker:        newCircuitBreaker("servicedesk-api"),
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(math.Ceil(rps))
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// FetchWithRetry performs req with the client's timeout, retry and breaker
// policy. A non-2xx response is returned with a nil error.
//
// Caller cancellation is not propagated: ctx supplies request-scoped log
// values only, and each attempt is bounded by the client timeout.
func (c *Client) FetchWithRetry(ctx context.Context, req Request) (*Response, error) {
	// A browser disconnecting mid-listing must not abort the page loop or
	// count as an upstream failure.
	ctx = context.WithoutCancel(ctx)

	if req.Method == "" {
		req.Method = http.MethodGet
	}
	base, err := http.NewRequestWithContext(ctx, req.Method, req.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	base.Header.Set(authTokenHeader, c.authToken)
	base.Header.Set("Accept", acceptHeader)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("outbound rate limiter: %w", err)
			}
		}

		resp, err := c.breaker.execute(func() (*Response, error) {
			return c.attempt(ctx, base, req.Resource)
		})
		if err == nil {
			return resp, nil
		}

		// Terminal: timeouts and an open breaker.
		if errors.Is(err, ErrTimeout) || errors.Is(err, ErrCircuitOpen) {
			return nil, err
		}

		lastErr = err
		if attempt == c.retries {
			break
		}

		// Exponential backoff: base, 2*base, 4*base...
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		logging.Ctx(ctx).Warn().
			Str("url", req.URL).
			Str("resource", req.Resource).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Str("breaker", c.breaker.State()).
			Err(err).
			Msg("Upstream request failed, retrying")
		metrics.RecordUpstreamRetry(req.Resource)

		timer := time.NewTimer(delay)
		<-timer.C
	}

	if lastErr == nil {
		lastErr = ErrRequestFailed
	}
	return nil, lastErr
}

// attempt runs a single bounded request and reads the whole body.
func (c *Client) attempt(ctx context.Context, base *http.Request, resource string) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.httpClient.Do(base.Clone(attemptCtx))
	if err != nil {
		return nil, c.classify(ctx, attemptCtx, err, resource, start)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, c.classify(ctx, attemptCtx, err, resource, start)
	}

	outcome := metrics.OutcomeSuccess
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = metrics.OutcomeStatus
	}
	metrics.RecordUpstreamAttempt(resource, outcome, time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// classify maps a transport error to ErrTimeout when the attempt deadline
// ended the request.
func (c *Client) classify(parent, attemptCtx context.Context, err error, resource string, start time.Time) error {
	if parent.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		metrics.RecordUpstreamAttempt(resource, metrics.OutcomeTimeout, time.Since(start))
		return fmt.Errorf("%w after %v", ErrTimeout, c.timeout)
	}
	metrics.RecordUpstreamAttempt(resource, metrics.OutcomeNetwork, time.Since(start))
	return fmt.Errorf("servicedesk request failed: %w", err)
}

// bodyForLog returns at most maxErrorBodySize bytes of body for diagnostics.
func bodyForLog(body []byte) string {
	if len(body) <= maxErrorBodySize {
		return string(body)
	}
	return string(body[:maxErrorBodySize]) + "\n... (truncated)"
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
)

// SlowRequestThreshold is the duration above which requests log at warn.
const SlowRequestThreshold = time.Second

// AccessLog writes one entry per request with method, path, status,
// duration and client IP.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		event := logging.Ctx(r.Context()).Info()
		if duration > SlowRequestThreshold {
			event = logging.Ctx(r.Context()).Warn().Dur("threshold", SlowRequestThreshold)
		}
		event.
			Str("method", r.Method).
			Str("path", escapeControl(r.URL.Path)).
			Int("status", rec.statusCode).
			Int("bytes", rec.bytes).
			Dur("duration", duration).
			Str("remote_ip", clientIP(r)).
			Msg("HTTP request")
	})
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has
// already rewritten RemoteAddr when proxy headers are trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return escapeControl(r.RemoteAddr)
	}
	return host
}

// escapeControl quotes control characters so a crafted path cannot forge
// log lines in console output.
func escapeControl(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			q := strconv.Quote(s)
			return q[1 : len(q)-1]
		}
	}
	return s
}

// statusRecorder captures the status code and body size.
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	bytes       int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

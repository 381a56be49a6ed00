// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package logging

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Security event names.
const (
	EventAdminSyncDenied  = "admin_sync_denied"
	EventAdminSyncSuccess = "admin_sync"
	EventCORSRejected     = "cors_rejected"
)

// SecurityEvent is a security-relevant request outcome written to the audit stream.
type SecurityEvent struct {
	// Event is the event name, one of the Event* constants.
	Event string
	// IPAddress is the client address as seen by the router.
	IPAddress string
	// Path is the request path.
	Path string
	// Origin is the browser Origin header, if any.
	Origin string
	// Success indicates whether the operation was allowed.
	Success bool
	// Error is the failure reason.
	Error string
	// Details holds extra fields; values are sanitized by key.
	Details map[string]string
}

// SecurityLogger writes SecurityEvents with sensitive values masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the current global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// LogEvent writes event. Denied events are logged at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	status := "success"
	if !event.Success {
		e = l.logger.Warn()
		status = "failed"
	}
	e = e.Str("event", event.Event).Str("status", status)

	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Path != "" {
		e = e.Str("path", truncateString(event.Path, 200))
	}
	if event.Origin != "" {
		e = e.Str("origin", truncateString(event.Origin, 200))
	}
	if event.Error != "" && !event.Success {
		e = e.Str("error", SanitizeError(event.Error))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("security event")
}

// LogAdminSyncDenied records a sync attempt with a missing or wrong admin key.
func (l *SecurityLogger) LogAdminSyncDenied(ip, path string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventAdminSyncDenied,
		IPAddress: ip,
		Path:      path,
		Error:     "missing or invalid admin sync key",
	})
}

// LogAdminSync records an authorized account sync.
func (l *SecurityLogger) LogAdminSync(ip string, synced int) {
	l.LogEvent(&SecurityEvent{
		Event:     EventAdminSyncSuccess,
		IPAddress: ip,
		Success:   true,
		Details: map[string]string{
			"synced": strconv.Itoa(synced),
		},
	})
}

// LogCORSRejected records a browser request from an origin outside the allowlist.
func (l *SecurityLogger) LogCORSRejected(origin, ip, path string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventCORSRejected,
		IPAddress: ip,
		Path:      path,
		Origin:    origin,
		Error:     "origin not allowed",
	})
}

// SanitizeToken masks a token, keeping only its first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeError replaces error text that mentions credentials with a generic message.
func SanitizeError(err string) string {
	lowerErr := strings.ToLower(err)
	for _, pattern := range []string{"authtoken", "password", "secret", "token", "bearer", "authorization", "cookie"} {
		if strings.Contains(lowerErr, pattern) {
			return "credential error"
		}
	}
	return truncateString(err, 200)
}

// SanitizeValue masks value when key names a credential.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "authtoken", "token", "access_token", "api_key", "apikey",
		"authorization", "x-admin-sync-key", "admin_sync_key", "password", "secret":
		return SanitizeToken(value)
	}
	return value
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

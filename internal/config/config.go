// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	ServiceDesk ServiceDeskConfig `koanf:"servicedesk"`
	Security    SecurityConfig    `koanf:"security"`
	Filter      FilterConfig      `koanf:"filter"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`

	// TrustProxy makes the router derive the client IP from
	// X-Forwarded-For / X-Real-IP. Only enable behind a trusted reverse proxy.
	TrustProxy bool `koanf:"trust_proxy"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ServiceDeskConfig holds the upstream helpdesk connection settings.
type ServiceDeskConfig struct {
	BaseURL   string `koanf:"base_url"`
	AuthToken string `koanf:"auth_token"`

	Timeout          time.Duration `koanf:"timeout"`
	Retries          int           `koanf:"retries"`
	RetryBaseDelay   time.Duration `koanf:"retry_base_delay"`
	AccountsMaxPages int           `koanf:"accounts_max_pages"`

	// MaxRequestsPerSecond paces outbound attempts. 0 disables pacing.
	MaxRequestsPerSecond float64 `koanf:"max_requests_per_second"`
}

// SecurityConfig holds browser-facing access controls.
type SecurityConfig struct {
	AllowedOrigins    []string      `koanf:"allowed_origins"`
	AdminSyncKey      string        `koanf:"admin_sync_key"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// FilterConfig controls which tickets are withheld from /requests.
type FilterConfig struct {
	ExcludedTechnicians []string `koanf:"excluded_technicians"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LoggingConfig mirrors logging.Config for the koanf layers.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, the optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

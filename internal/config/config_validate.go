// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package config

import (
	"fmt"
	"strings"
	"time"
)

// MinAdminSyncKeyLength is the shortest accepted ADMIN_SYNC_KEY.
const MinAdminSyncKeyLength = 32

// MaxRetries bounds SERVICEDESK_RETRIES.
const MaxRetries = 10

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateServiceDesk(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return c.validateEnvironment()
}

func (c *Config) validateEnvironment() error {
	switch strings.ToLower(c.Server.Environment) {
	case "development", "production", "test":
		return nil
	default:
		return fmt.Errorf("NODE_ENV must be one of development, production, test, got %q", c.Server.Environment)
	}
}

func (c *Config) validateServiceDesk() error {
	if c.ServiceDesk.BaseURL == "" {
		return fmt.Errorf("SERVICEDESK_BASE_URL is required")
	}
	if err := validateHTTPURL(c.ServiceDesk.BaseURL, "SERVICEDESK_BASE_URL"); err != nil {
		return fmt.Errorf("SERVICEDESK_BASE_URL is invalid: %w", err)
	}
	if strings.TrimSpace(c.ServiceDesk.AuthToken) == "" {
		return fmt.Errorf("SERVICEDESK_AUTHTOKEN is required")
	}
	if c.ServiceDesk.Timeout <= 0 {
		return fmt.Errorf("SERVICEDESK_TIMEOUT must be positive, got %v", c.ServiceDesk.Timeout)
	}
	if c.ServiceDesk.Retries < 0 || c.ServiceDesk.Retries > MaxRetries {
		return fmt.Errorf("SERVICEDESK_RETRIES must be between 0 and %d, got %d", MaxRetries, c.ServiceDesk.Retries)
	}
	if c.ServiceDesk.RetryBaseDelay <= 0 {
		return fmt.Errorf("SERVICEDESK_RETRY_BASE_DELAY must be positive, got %v", c.ServiceDesk.RetryBaseDelay)
	}
	if c.ServiceDesk.AccountsMaxPages < 1 {
		return fmt.Errorf("SERVICEDESK_ACCOUNTS_MAX_PAGES must be at least 1, got %d", c.ServiceDesk.AccountsMaxPages)
	}
	if c.ServiceDesk.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("SERVICEDESK_MAX_RPS must not be negative, got %v", c.ServiceDesk.MaxRequestsPerSecond)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.AdminSyncKey) < MinAdminSyncKeyLength {
		return fmt.Errorf("ADMIN_SYNC_KEY must be at least %d characters", MinAdminSyncKeyLength)
	}

	for _, origin := range c.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must list explicit origins, wildcard is not supported")
		}
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("ALLOWED_ORIGINS is invalid: %w", err)
		}
	}

	return c.validateRateLimits()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	return nil
}

func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
}

// IsProduction reports whether NODE_ENV/ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

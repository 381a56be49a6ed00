// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/servicedesk-proxy/config.yaml",
	"/etc/servicedesk-proxy/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultExcludedTechnician is hidden from /requests unless EXCLUDED_TECHNICIANS overrides it.
const DefaultExcludedTechnician = "kristian m matias"

// defaultConfig returns a Config with every optional setting at its default.
// Required secrets are left empty so validation catches them.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3001,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
			TrustProxy:  false,
		},
		ServiceDesk: ServiceDeskConfig{
			BaseURL:              "",
			AuthToken:            "",
			Timeout:              15 * time.Second,
			Retries:              2,
			RetryBaseDelay:       time.Second,
			AccountsMaxPages:     10,
			MaxRequestsPerSecond: 10,
		},
		Security: SecurityConfig{
			AllowedOrigins:    []string{},
			AdminSyncKey:      "",
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Filter: FilterConfig{
			ExcludedTechnicians: []string{DefaultExcludedTechnician},
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults,
// then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// SERVICEDESK_BASE_URL -> servicedesk.base_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.allowed_origins",
	"filter.excluded_technicians",
}

// processSliceFields splits comma-separated string values into trimmed
// slices with empty entries dropped. An empty string yields an empty slice.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"port":         "server.port",
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"node_env":     "server.environment",
	"environment":  "server.environment",
	"trust_proxy":  "server.trust_proxy",

	// Upstream helpdesk
	"servicedesk_base_url":           "servicedesk.base_url",
	"servicedesk_authtoken":          "servicedesk.auth_token",
	"servicedesk_timeout":            "servicedesk.timeout",
	"servicedesk_retries":            "servicedesk.retries",
	"servicedesk_retry_base_delay":   "servicedesk.retry_base_delay",
	"servicedesk_accounts_max_pages": "servicedesk.accounts_max_pages",
	"servicedesk_max_rps":            "servicedesk.max_requests_per_second",

	// Security
	"allowed_origins":     "security.allowed_origins",
	"admin_sync_key":      "security.admin_sync_key",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Filtering
	"excluded_technicians": "filter.excluded_technicians",

	// Metrics
	"metrics_enabled": "metrics.enabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envAliases maps a secondary variable name to the primary one that wins
// when both are set.
var envAliases = map[string]string{
	"http_port":   "PORT",
	"environment": "NODE_ENV",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped, so unrelated environment
// does not leak into the configuration.
func envTransformFunc(key string) string {
	return envKey(key, os.LookupEnv)
}

// envKey resolves key like envTransformFunc. An alias is skipped when its
// primary variable is present in lookup, so precedence does not depend on
// environment order.
func envKey(key string, lookup func(string) (string, bool)) string {
	name := strings.ToLower(key)
	if primary, ok := envAliases[name]; ok {
		if _, set := lookup(primary); set {
			return ""
		}
	}
	return envMappings[name]
}

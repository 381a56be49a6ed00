// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateHTTPURL checks that rawURL is an absolute http(s) URL with a host
// and no query string. A path prefix is allowed since the helpdesk may be
// mounted below the root.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// validateOrigin checks that an allowlisted origin is scheme://host[:port].
func validateOrigin(origin string) error {
	parsedURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("failed to parse origin: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("origin must be scheme://host[:port], got: %q", origin)
	}
	if strings.TrimSuffix(parsedURL.Path, "/") != "" {
		return fmt.Errorf("origin must not contain a path, got: %q", origin)
	}
	return nil
}

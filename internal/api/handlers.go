// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"context"

	"github.com/tomtom215/servicedesk-proxy/internal/config"
	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/models"
	"github.com/tomtom215/servicedesk-proxy/internal/tickets"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "servicedesk-proxy"

// syncPreviewSize is how many accounts a sync response previews.
const syncPreviewSize = 5

// Fetcher retrieves data from the helpdesk. *servicedesk.Client implements it.
type Fetcher interface {
	FetchAllAccounts(ctx context.Context, maxPages int) ([]models.NormalizedAccount, error)
	FetchAllRequests(ctx context.Context, account string) ([]models.RawTicket, error)
}

// Handler serves the proxy endpoints.
type Handler struct {
	fetcher          Fetcher
	accountsMaxPages int
	adminSyncKey     string
	exclusions       tickets.ExclusionSet
	security         *logging.SecurityLogger
	errorResponder
}

// NewHandler creates a Handler backed by fetcher.
func NewHandler(cfg *config.Config, fetcher Fetcher) *Handler {
	return &Handler{
		fetcher:          fetcher,
		accountsMaxPages: cfg.ServiceDesk.AccountsMaxPages,
		adminSyncKey:     cfg.Security.AdminSyncKey,
		exclusions:       tickets.NewExclusionSet(cfg.Filter.ExcludedTechnicians...),
		security:         logging.NewSecurityLogger(),
		errorResponder:   errorResponder{production: cfg.IsProduction()},
	}
}

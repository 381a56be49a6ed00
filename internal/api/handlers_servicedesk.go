// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/metrics"
	"github.com/tomtom215/servicedesk-proxy/internal/models"
	"github.com/tomtom215/servicedesk-proxy/internal/tickets"
)

// AccountsResponse is the body of GET /accounts.
type AccountsResponse struct {
	Success bool                       `json:"success"`
	Count   int                        `json:"count"`
	Data    []models.NormalizedAccount `json:"data"`
}

// RequestsMeta describes how a /requests result was produced.
type RequestsMeta struct {
	Account             string   `json:"account"`
	From                *string  `json:"from"`
	To                  *string  `json:"to"`
	TotalRaw            int      `json:"total_raw"`
	TotalFiltered       int      `json:"total_filtered"`
	ExcludedTechnicians []string `json:"excluded_technicians"`
}

// RequestsResponse is the body of GET /requests.
type RequestsResponse struct {
	Success bool                      `json:"success"`
	Meta    RequestsMeta              `json:"meta"`
	Data    []models.NormalizedTicket `json:"data"`
}

// SyncResponse is the body of POST /accounts/sync.
type SyncResponse struct {
	Success   bool                       `json:"success"`
	Synced    int                        `json:"synced"`
	Timestamp string                     `json:"timestamp"`
	Preview   []models.NormalizedAccount `json:"preview"`
}

// timestampLayout matches ISO-8601 with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Accounts lists every account, normalized.
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.fetcher.FetchAllAccounts(r.Context(), h.accountsMaxPages)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, AccountsResponse{
		Success: true,
		Count:   len(accounts),
		Data:    accounts,
	})
}

// Requests lists one account's tickets, filtered by date range and the
// technician exclusion set, then normalized.
func (h *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	q, err := parseRequestsQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	raw, err := h.fetcher.FetchAllRequests(r.Context(), q.Account)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	filtered := tickets.Filter(raw, q.DateRange(), h.exclusions)
	data := tickets.NormalizeAll(filtered)

	logging.Ctx(r.Context()).Debug().
		Str("account", q.Account).
		Int("total_raw", len(raw)).
		Int("total_filtered", len(data)).
		Msg("Served requests")

	respondJSON(w, http.StatusOK, RequestsResponse{
		Success: true,
		Meta: RequestsMeta{
			Account:             q.Account,
			From:                optionalString(q.From),
			To:                  optionalString(q.To),
			TotalRaw:            len(raw),
			TotalFiltered:       len(data),
			ExcludedTechnicians: h.exclusions.Names(),
		},
		Data: data,
	})
}

// SyncAccounts refreshes the account list on behalf of an admin. Nothing
// is persisted; the response reports the count and a short preview.
//
// The key comparison is a plain string equality.
func (h *Handler) SyncAccounts(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(AdminSyncKeyHeader)
	if key == "" || h.adminSyncKey == "" || key != h.adminSyncKey {
		metrics.RecordAdminSync("denied")
		h.security.LogAdminSyncDenied(remoteIP(r), r.URL.Path)
		h.respondError(w, r, &AuthError{Err: ErrAdminKeyMismatch})
		return
	}

	accounts, err := h.fetcher.FetchAllAccounts(r.Context(), h.accountsMaxPages)
	if err != nil {
		metrics.RecordAdminSync("error")
		h.respondError(w, r, err)
		return
	}

	metrics.RecordAdminSync("success")
	h.security.LogAdminSync(remoteIP(r), len(accounts))

	preview := accounts
	if len(preview) > syncPreviewSize {
		preview = preview[:syncPreviewSize]
	}

	respondJSON(w, http.StatusOK, SyncResponse{
		Success:   true,
		Synced:    len(accounts),
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Preview:   preview,
	})
}

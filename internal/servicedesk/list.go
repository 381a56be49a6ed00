// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package servicedesk

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/metrics"
	"github.com/tomtom215/servicedesk-proxy/internal/models"
)

const (
	// PageSize is the row count requested per upstream page.
	PageSize = 100

	// DefaultAccountsMaxPages caps account listings when no cap is given.
	DefaultAccountsMaxPages = 10

	ResourceAccounts = "accounts"
	ResourceRequests = "requests"

	accountsPath = "/api/v3/accounts"
	requestsPath = "/api/v3/requests"
)

// startIndex returns the 1-based row offset of page (1-based).
func startIndex(page int) int {
	return (page-1)*PageSize + 1
}

// listURL encodes info into the input_data query parameter of path.
func (c *Client) listURL(path string, info models.ListInfo) (string, error) {
	payload, err := json.Marshal(models.InputData{ListInfo: info})
	if err != nil {
		return "", fmt.Errorf("failed to encode input_data: %w", err)
	}
	q := url.Values{}
	q.Set("input_data", string(payload))
	return c.baseURL + path + "?" + q.Encode(), nil
}

// fetchPage retrieves one list page and decodes it into out. Numbers are
// decoded as json.Number so large ids keep every digit.
func (c *Client) fetchPage(ctx context.Context, resource, path string, info models.ListInfo, out any) error {
	u, err := c.listURL(path, info)
	if err != nil {
		return err
	}

	resp, err := c.FetchWithRetry(ctx, Request{Method: http.MethodGet, URL: u, Resource: resource})
	if err != nil {
		return fmt.Errorf("fetch %s at start_index %d: %w", resource, info.StartIndex, err)
	}

	if !resp.OK() {
		logging.Ctx(ctx).Error().
			Str("resource", resource).
			Int("status_code", resp.StatusCode).
			Int("start_index", info.StartIndex).
			Str("body", bodyForLog(resp.Body)).
			Msg("Upstream returned non-2xx status")
		return &StatusError{Resource: resource, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s page at start_index %d: %w", resource, info.StartIndex, err)
	}

	metrics.RecordPageFetched(resource)
	return nil
}

// FetchAllAccounts lists every account, up to maxPages pages, normalized.
// A maxPages below 1 falls back to DefaultAccountsMaxPages.
func (c *Client) FetchAllAccounts(ctx context.Context, maxPages int) ([]models.NormalizedAccount, error) {
	if maxPages < 1 {
		maxPages = DefaultAccountsMaxPages
	}

	accounts := make([]models.NormalizedAccount, 0, PageSize)
	pages := 0
	for page := 1; page <= maxPages; page++ {
		info := models.ListInfo{
			RowCount:   PageSize,
			StartIndex: startIndex(page),
			SortField:  "name",
			SortOrder:  models.SortAscending,
		}

		var p models.AccountsPage
		if err := c.fetchPage(ctx, ResourceAccounts, accountsPath, info, &p); err != nil {
			return nil, err
		}
		pages++

		for _, raw := range p.Accounts {
			accounts = append(accounts, models.NormalizeAccount(raw))
		}
		if !p.ListInfo.HasMoreRows {
			break
		}
	}

	logging.Ctx(ctx).Debug().Int("pages", pages).Int("count", len(accounts)).Msg("Fetched accounts")
	return accounts, nil
}

// FetchAllRequests lists every request whose account name equals account.
// It follows has_more_rows without a page cap.
func (c *Client) FetchAllRequests(ctx context.Context, account string) ([]models.RawTicket, error) {
	requests := make([]models.RawTicket, 0, PageSize)
	pages := 0
	for page := 1; ; page++ {
		info := models.ListInfo{
			RowCount:     PageSize,
			StartIndex:   startIndex(page),
			SortField:    "created_time",
			SortOrder:    models.SortDescending,
			SearchFields: map[string]string{"account.name": account},
		}

		var p models.RequestsPage
		if err := c.fetchPage(ctx, ResourceRequests, requestsPath, info, &p); err != nil {
			return nil, err
		}
		pages++

		requests = append(requests, p.Requests...)
		if !p.ListInfo.HasMoreRows {
			break
		}
	}

	logging.Ctx(ctx).Debug().Int("pages", pages).Int("count", len(requests)).Msg("Fetched requests")
	return requests, nil
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package models

import (
	"github.com/goccy/go-json"
)

// Sort orders accepted by the helpdesk list API.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// ListInfo is the pagination and search block of a list query.
type ListInfo struct {
	RowCount     int               `json:"row_count"`
	StartIndex   int               `json:"start_index"`
	SortField    string            `json:"sort_field,omitempty"`
	SortOrder    string            `json:"sort_order,omitempty"`
	SearchFields map[string]string `json:"search_fields,omitempty"`
}

// InputData is the JSON document carried in the input_data query parameter.
type InputData struct {
	ListInfo ListInfo `json:"list_info"`
}

// PageInfo is the list_info block of a list response.
type PageInfo struct {
	HasMoreRows bool `json:"has_more_rows"`
}

// RawAccount is an upstream account record. Only the fields the proxy
// reads are typed; ID, Site and Status keep whatever JSON shape upstream sent.
type RawAccount struct {
	ID     any `json:"id"`
	Name   any `json:"name"`
	Site   any `json:"site"`
	Status any `json:"status"`
}

// AccountsPage is one page of GET /api/v3/accounts.
type AccountsPage struct {
	Accounts []RawAccount `json:"accounts"`
	ListInfo PageInfo     `json:"list_info"`
}

// RawTicket is an upstream request record of arbitrary shape.
type RawTicket = map[string]any

// RequestsPage is one page of GET /api/v3/requests.
type RequestsPage struct {
	Requests []RawTicket `json:"requests"`
	ListInfo PageInfo    `json:"list_info"`
}

// NormalizedAccount is the account shape served to clients.
type NormalizedAccount struct {
	ExternalID string  `json:"externalId"`
	Name       *string `json:"name"`
	Site       *string `json:"site"`
	IsActive   bool    `json:"isActive"`
}

// NormalizedTicket is a RawTicket with its display fields flattened.
type NormalizedTicket = map[string]any

// StringifyID renders an upstream id as a string. Numbers decoded as
// json.Number keep their exact digits; absent ids become "".
func StringifyID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

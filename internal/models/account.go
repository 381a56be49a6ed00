// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package models

import "strings"

// NormalizeAccount flattens an upstream account.
//
// Name is kept only when upstream sent a string. Site accepts a plain string
// or a named object. IsActive is true iff the status name equals "active"
// ignoring case.
func NormalizeAccount(raw RawAccount) NormalizedAccount {
	acc := NormalizedAccount{
		ExternalID: StringifyID(raw.ID),
	}

	if name, ok := raw.Name.(string); ok {
		acc.Name = &name
	}

	if site := ParseNamedField(raw.Site); site.Present() {
		v := site.Value
		acc.Site = &v
	}

	status := ParseNamedField(raw.Status)
	acc.IsActive = strings.EqualFold(status.Value, "active")

	return acc
}

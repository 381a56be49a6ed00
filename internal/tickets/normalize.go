// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package tickets

import (
	"strings"

	"github.com/tomtom215/servicedesk-proxy/internal/models"
)

// Fallback display values for absent fields.
const (
	FallbackStatus     = "Unknown"
	FallbackPriority   = "Unspecified"
	FallbackRequester  = "Unknown"
	FallbackTechnician = "Unassigned"
	FallbackCreatedBy  = "System"
)

// displayFields maps each flattened field to its fallback.
var displayFields = []struct {
	key      string
	fallback string
}{
	{"status", FallbackStatus},
	{"priority", FallbackPriority},
	{"requester", FallbackRequester},
	{"technician", FallbackTechnician},
	{"created_by", FallbackCreatedBy},
	{"subject", ""},
	{"short_description", ""},
	{"group", ""},
}

// Normalize returns a copy of raw with display fields flattened to strings
// and the synthesized description fields added. raw is not modified.
func Normalize(raw models.RawTicket) models.NormalizedTicket {
	out := make(models.NormalizedTicket, len(raw)+3)
	for k, v := range raw {
		out[k] = v
	}

	for _, f := range displayFields {
		out[f.key] = models.ParseNamedField(raw[f.key]).Resolve(f.fallback)
	}

	description := strings.TrimSpace(
		out["subject"].(string) + " " + out["short_description"].(string) + " " + out["group"].(string),
	)
	out["description"] = description
	out["text"] = description
	out["summary"] = description

	return out
}

// NormalizeAll normalizes each ticket in order.
func NormalizeAll(raw []models.RawTicket) []models.NormalizedTicket {
	out := make([]models.NormalizedTicket, 0, len(raw))
	for _, t := range raw {
		out = append(out, Normalize(t))
	}
	return out
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package tickets

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/servicedesk-proxy/internal/models"
)

// DateRange bounds ticket creation time in epoch milliseconds. A nil bound
// disables range filtering entirely, not just that side.
type DateRange struct {
	From *int64
	To   *int64
}

// Active reports whether both bounds are set.
func (r DateRange) Active() bool {
	return r.From != nil && r.To != nil
}

// InDateRange reports whether the ticket's created_time.value lies within r,
// inclusive. Tickets with unreadable timestamps fail any active range.
func InDateRange(t models.RawTicket, r DateRange) bool {
	if !r.Active() {
		return true
	}
	created := createdTimeMillis(t)
	return float64(*r.From) <= created && created <= float64(*r.To)
}

// createdTimeMillis reads created_time.value, returning NaN when it is
// missing or not numeric.
func createdTimeMillis(t models.RawTicket) float64 {
	ct, ok := t["created_time"].(map[string]any)
	if !ok {
		return math.NaN()
	}
	switch v := ct["value"].(type) {
	case json.Number:
		return parseMillis(v.String())
	case string:
		return parseMillis(v)
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return math.NaN()
	}
}

func parseMillis(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ExclusionSet holds normalized technician names whose tickets are withheld.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from names, lower-casing and trimming each.
// Blank names are ignored.
func NewExclusionSet(names ...string) ExclusionSet {
	s := make(ExclusionSet, len(names))
	for _, n := range names {
		if n = normalizeName(n); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Excludes reports whether the ticket's technician is in the set.
// A ticket without a technician name is never excluded.
func (s ExclusionSet) Excludes(t models.RawTicket) bool {
	if len(s) == 0 {
		return false
	}
	tech := models.ParseNamedField(t["technician"])
	if !tech.Present() {
		return false
	}
	name := normalizeName(tech.Value)
	if name == "" {
		return false
	}
	_, ok := s[name]
	return ok
}

// Names returns the set's members sorted, for response metadata.
func (s ExclusionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func normalizeName(n string) string {
	return strings.ToLower(strings.TrimSpace(n))
}

// Filter returns the tickets that pass both the date range and the
// exclusion set, preserving upstream order.
func Filter(raw []models.RawTicket, r DateRange, excluded ExclusionSet) []models.RawTicket {
	out := make([]models.RawTicket, 0, len(raw))
	for _, t := range raw {
		if InDateRange(t, r) && !excluded.Excludes(t) {
			out = append(out, t)
		}
	}
	return out
}

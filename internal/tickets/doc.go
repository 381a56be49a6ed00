// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package tickets filters and flattens upstream helpdesk requests for display.

Filtering runs first and keeps a ticket only if both predicates pass:

  - InDateRange: created_time.value within [from, to] epoch milliseconds,
    inclusive. With either bound absent every ticket passes. A missing or
    non-numeric timestamp never matches a supplied range.
  - ExclusionSet.Excludes: the technician name, lower-cased and trimmed,
    is in the configured set. Tickets without a technician are kept.

Normalize then copies every upstream field and overwrites the display
fields with plain strings:

	status      -> string or status.name, else "Unknown"
	priority    -> string or priority.name, else "Unspecified"
	requester   -> string or requester.name, else "Unknown"
	technician  -> string or technician.name, else "Unassigned"
	created_by  -> string or created_by.name, else "System"

subject, short_description and group are coerced the same way with an empty
fallback, and description, text and summary all carry
trim(subject + " " + short_description + " " + group).

Both stages are pure functions with no failure modes.
*/
package tickets

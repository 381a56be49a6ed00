// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package models defines the data shapes exchanged with the helpdesk API and
returned to browser clients.

Upstream models:
  - InputData / ListInfo: the list query serialized into the input_data parameter
  - AccountsPage / RequestsPage: one page of the accounts or requests listing
  - RawAccount / RawTicket: upstream records, decoded with numbers preserved

Client models:
  - NormalizedAccount: the flat account shape served by /accounts
  - NormalizedTicket: a RawTicket with display fields flattened to strings

Upstream fields such as status or technician arrive either as a plain string
or as an object carrying a name. NamedField models that variance once:

	f := models.ParseNamedField(ticket["status"])
	status := f.Resolve("Unknown")
*/
package models

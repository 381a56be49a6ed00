// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/tickets"
	"github.com/tomtom215/servicedesk-proxy/internal/validation"
)

// dateLayout is the accepted from/to format.
const dateLayout = "2006-01-02"

// endOfDay is the offset of the inclusive upper bound within a "to" date.
const endOfDay = 24*time.Hour - time.Second

// RequestsQuery is the query string of GET /requests.
type RequestsQuery struct {
	Account string `query:"account" validate:"required,max=255"`
	From    string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// parseRequestsQuery reads and validates the query. A repeated parameter is
// rejected rather than silently picking one value.
func parseRequestsQuery(r *http.Request) (*RequestsQuery, error) {
	values := r.URL.Query()
	for _, name := range []string{"account", "from", "to"} {
		if len(values[name]) > 1 {
			return nil, NewValidationError(name+" must be a single value", name)
		}
	}

	q := &RequestsQuery{
		Account: values.Get("account"),
		From:    values.Get("from"),
		To:      values.Get("to"),
	}
	if verr := validation.ValidateStruct(q); verr != nil {
		for _, fe := range verr.Errors() {
			logging.Ctx(r.Context()).Debug().
				Str("field", fe.Field()).
				Str("tag", fe.Tag()).
				Str("param", fe.Param()).
				Msg("Query parameter rejected")
		}
		return nil, NewValidationError(verr.Error(), verr.Fields()...)
	}
	return q, nil
}

// DateRange converts from/to into inclusive epoch-millisecond bounds:
// from at 00:00:00Z, to at 23:59:59Z. A missing date leaves its bound nil,
// which disables range filtering.
func (q *RequestsQuery) DateRange() tickets.DateRange {
	var r tickets.DateRange
	if from, ok := parseDay(q.From); ok {
		ms := from.UnixMilli()
		r.From = &ms
	}
	if to, ok := parseDay(q.To); ok {
		ms := to.Add(endOfDay).UnixMilli()
		r.To = &ms
	}
	return r
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// optionalString renders "" as JSON null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

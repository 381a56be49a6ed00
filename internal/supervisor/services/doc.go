// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package services adapts proxy components to suture's Serve(ctx) error model.

HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine,
and context cancellation triggers Shutdown with a bounded timeout so
in-flight upstream calls can finish.

	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services

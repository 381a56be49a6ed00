// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

/*
Package supervisor runs the proxy's long-lived services under a suture v4
supervisor tree.

The tree has a root supervisor and one child layer:

	servicedesk-proxy (root)
	└── api-layer
	    └── http-server

A service that returns an error is restarted with suture's failure
threshold, decay and backoff. Canceling the context passed to
ServeBackground stops every service, waiting up to ShutdownTimeout for each.

Supervisor events are logged through a sutureslog hook. cmd/server passes
logging.NewSlogLogger("supervisor") so they land in the same zerolog stream
as everything else.
*/
package supervisor

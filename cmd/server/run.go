// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package main

import (
	"context"
	"errors"

	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/supervisor"
)

// runTree serves tree until ctx is canceled or the tree stops on its own,
// then reports services that outlived the shutdown timeout. A clean
// shutdown returns nil.
func runTree(ctx context.Context, tree *supervisor.SupervisorTree) error {
	// ServeBackground sends exactly one value and never closes the channel.
	errCh := tree.ServeBackground(ctx)

	var err error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/servicedesk-proxy/internal/api"
	"github.com/tomtom215/servicedesk-proxy/internal/config"
	"github.com/tomtom215/servicedesk-proxy/internal/logging"
	"github.com/tomtom215/servicedesk-proxy/internal/servicedesk"
	"github.com/tomtom215/servicedesk-proxy/internal/supervisor"
	"github.com/tomtom215/servicedesk-proxy/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Fatal exits with status 1.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("upstream", cfg.ServiceDesk.BaseURL).
		Int("allowed_origins", len(cfg.Security.AllowedOrigins)).
		Int("excluded_technicians", len(cfg.Filter.ExcludedTechnicians)).
		Msg("Configuration loaded")

	if len(cfg.Security.AllowedOrigins) == 0 {
		logging.Warn().Msg("ALLOWED_ORIGINS is empty; every browser request with an Origin header will be rejected")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	client := servicedesk.NewClient(&cfg.ServiceDesk)
	router := api.NewRouter(cfg, client)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		// A second signal gets the default behavior and kills the process.
		signal.Stop(sigCh)
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := runTree(ctx, tree); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	logging.Info().Msg("ServiceDesk proxy stopped")
}

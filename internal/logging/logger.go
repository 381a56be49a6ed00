// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

// Package logging provides the process-wide zerolog logger for the proxy.
//
// Every log line is a single JSON object carrying time, level and message
// plus structured fields:
//
//	logging.Info().Str("resource", "accounts").Int("pages", 3).Msg("Fetch complete")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Upstream retry")
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the sink and verbosity of the global logger.
// The zero value writes info-level JSON to stderr.
type Config struct {
	// Level is trace, debug, info, warn or error. Unknown values mean info.
	Level string
	// Format is json or console.
	Format string
	// Caller adds file:line to every line.
	Caller bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	global = build(Config{})
}

// Init rebuilds the global logger from cfg. Safe to call more than once.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zctx := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	return zctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// With starts a child logger context on the global logger.
func With() zerolog.Context {
	l := Logger()
	return l.With()
}

func current() *zerolog.Logger {
	l := Logger()
	return &l
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a fatal event; the process exits with status 1 after Msg.
func Fatal() *zerolog.Event { return current().Fatal() }

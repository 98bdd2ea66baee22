// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared context for CLI command handlers.
package cli

import (
	"context"
	"time"

	"github.com/morganforge/insurechat-tui/internal/api"
	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// App bundles everything a command handler needs: configuration, the
// backend client, the state controller holding the restored session, and
// the legacy-key scrubber run on logout.
type App struct {
	Cfg        *config.Config
	Client     *api.Client
	Controller *state.Controller
	Scrub      func() error
}

// Formatter returns a locale-aware formatter for amounts and timestamps.
func (a *App) Formatter() *format.Formatter {
	return format.NewFormatter(a.Cfg.Locale.Language, a.Cfg.Locale.Currency)
}

// requestContext returns a context bounded by the configured timeout.
func (a *App) requestContext() (context.Context, context.CancelFunc) {
	timeout := a.Cfg.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

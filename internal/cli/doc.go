// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of insurechat:
// argument parsing, one-shot commands (ask, products, policy, buy, status)
// and the interactive chat REPL. The full-screen experience lives in
// internal/ui; both share the same API client and session controller.
package cli

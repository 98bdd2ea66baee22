// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Each remote flow gets its own result message carrying either a payload or
// an error; handlers in update.go decide how the transcript and state react.
package chat

import (
	"github.com/morganforge/insurechat-tui/internal/api"
	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/model"
)

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatResultMsg delivers the assistant's reply, or the failure, for one send.
type ChatResultMsg struct {
	Reply *api.ChatResponse
	Err   error
}

// =============================================================================
// CATALOG MESSAGES
// =============================================================================

// ProductsResultMsg delivers a catalog refresh.
type ProductsResultMsg struct {
	Products []model.Product
	Err      error
}

// BuyResultMsg delivers the outcome of a purchase.
type BuyResultMsg struct {
	Resp *api.BuyResponse
	Err  error
}

// =============================================================================
// POLICY MESSAGES
// =============================================================================

// PolicyResultMsg delivers a policy lookup.
type PolicyResultMsg struct {
	Policy *model.Policy
	Err    error
}

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// AuthResultMsg delivers a login or signup outcome.
type AuthResultMsg struct {
	Resp   *api.AuthResponse
	Signup bool
	Err    error
}

// LogoutDoneMsg signals the best-effort server logout finished; teardown
// proceeds regardless of Err.
type LogoutDoneMsg struct {
	Err error
}

// ProfileResultMsg delivers the profile view or update outcome.
type ProfileResultMsg struct {
	User    *model.User
	Updated bool
	Err     error
}

// PasswordChangedMsg delivers the change-password outcome.
type PasswordChangedMsg struct {
	Message string
	Err     error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a hot-reloaded configuration into the UI.
type ConfigReloadedMsg struct {
	Config *config.Config
}

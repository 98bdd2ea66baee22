// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"github.com/morganforge/insurechat-tui/internal/model"
)

// =============================================================================
// Request payloads
// =============================================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// chatRequest carries the user's message plus the active policy number, or an
// explicit null when none is selected.
type chatRequest struct {
	Message      string  `json:"message"`
	PolicyNumber *string `json:"policy_number"`
}

type buyRequest struct {
	ProductCode string   `json:"product_code"`
	AddonCodes  []string `json:"addon_codes"`
}

// =============================================================================
// Response payloads
// =============================================================================

// AuthResponse is returned by /login and /signup.
type AuthResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// ProfileResponse is returned by GET and PUT /profile.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// messageResponse covers endpoints that only return a human-readable message.
type messageResponse struct {
	Message string `json:"message"`
}

type productsResponse struct {
	Products []model.Product `json:"products"`
}

// ChatResponse is the assistant's reply. PolicyNumber is set when the backend
// resolved a policy during the exchange; RequiresPolicy asks the client to
// prompt for one; BookingIntent signals the user is shopping and the catalog
// should refresh.
type ChatResponse struct {
	Response       string `json:"response"`
	PolicyNumber   string `json:"policy_number"`
	RequiresPolicy bool   `json:"requires_policy"`
	BookingIntent  bool   `json:"booking_intent"`
}

// BuyResponse is returned by /buy-policy.
type BuyResponse struct {
	Message string        `json:"message"`
	Policy  *model.Policy `json:"policy"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
}

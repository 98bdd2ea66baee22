// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/morganforge/insurechat-tui/internal/model"
)

// Login exchanges credentials for a bearer token and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", authNone,
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account and logs it in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/signup", authNone,
		signupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token server-side. Callers treat failures as
// non-fatal; logout is a client-authoritative action.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", authRequired, nil, nil)
}

// Profile fetches the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", authRequired, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateProfile changes the user's name and email, returning the updated
// profile.
func (c *Client) UpdateProfile(ctx context.Context, name, email string) (*model.User, error) {
	var resp ProfileResponse
	err := c.do(ctx, http.MethodPut, "/profile", authRequired,
		profileUpdateRequest{Name: name, Email: email}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ChangePassword verifies the current password and sets a new one.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/change-password", authRequired,
		changePasswordRequest{CurrentPassword: current, NewPassword: newPassword}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Products fetches the full product catalog.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products", authOptional, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Policy looks up a policy by number.
func (c *Client) Policy(ctx context.Context, policyNumber string) (*model.Policy, error) {
	var resp model.Policy
	path := "/policy/" + url.PathEscape(policyNumber)
	if err := c.do(ctx, http.MethodGet, path, authOptional, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Chat sends a user message to the assistant. policyNumber scopes the
// conversation to a policy; pass empty when none is active.
func (c *Client) Chat(ctx context.Context, message, policyNumber string) (*ChatResponse, error) {
	req := chatRequest{Message: message}
	if policyNumber != "" {
		req.PolicyNumber = &policyNumber
	}

	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", authOptional, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BuyPolicy purchases a product with the chosen addons.
func (c *Client) BuyPolicy(ctx context.Context, productCode string, addonCodes []string) (*BuyResponse, error) {
	if addonCodes == nil {
		addonCodes = []string{}
	}

	var resp BuyResponse
	err := c.do(ctx, http.MethodPost, "/buy-policy", authRequired,
		buyRequest{ProductCode: productCode, AddonCodes: addonCodes}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", authNone, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

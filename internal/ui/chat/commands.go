// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file holds the tea.Cmd creators. Every remote call runs under its own
// deadline so a stalled backend settles the flow instead of hanging the UI.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/api"
)

// sendChatCmd posts a chat message scoped to the given policy number.
func sendChatCmd(client *api.Client, timeout time.Duration, message, policyNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := client.Chat(ctx, message, policyNumber)
		return ChatResultMsg{Reply: reply, Err: err}
	}
}

// fetchProductsCmd refreshes the catalog.
func fetchProductsCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		products, err := client.Products(ctx)
		return ProductsResultMsg{Products: products, Err: err}
	}
}

// verifyPolicyCmd looks up a policy number.
func verifyPolicyCmd(client *api.Client, timeout time.Duration, policyNumber string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		policy, err := client.Policy(ctx, policyNumber)
		return PolicyResultMsg{Policy: policy, Err: err}
	}
}

// loginCmd exchanges credentials for a session.
func loginCmd(client *api.Client, timeout time.Duration, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Login(ctx, email, password)
		return AuthResultMsg{Resp: resp, Err: err}
	}
}

// signupCmd registers a new account.
func signupCmd(client *api.Client, timeout time.Duration, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Signup(ctx, name, email, password)
		return AuthResultMsg{Resp: resp, Signup: true, Err: err}
	}
}

// logoutCmd informs the backend, best effort.
func logoutCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return LogoutDoneMsg{Err: client.Logout(ctx)}
	}
}

// profileCmd fetches the profile.
func profileCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := client.Profile(ctx)
		return ProfileResultMsg{User: user, Err: err}
	}
}

// updateProfileCmd saves name/email changes.
func updateProfileCmd(client *api.Client, timeout time.Duration, name, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := client.UpdateProfile(ctx, name, email)
		return ProfileResultMsg{User: user, Updated: true, Err: err}
	}
}

// changePasswordCmd rotates the password.
func changePasswordCmd(client *api.Client, timeout time.Duration, current, newPassword string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		msg, err := client.ChangePassword(ctx, current, newPassword)
		return PasswordChangedMsg{Message: msg, Err: err}
	}
}

// buyCmd purchases the product with the chosen addons.
func buyCmd(client *api.Client, timeout time.Duration, productCode string, addonCodes []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.BuyPolicy(ctx, productCode, addonCodes)
		return BuyResultMsg{Resp: resp, Err: err}
	}
}

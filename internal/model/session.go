// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// User is the authenticated user's profile as returned by the backend.
type User struct {
	UserID int64  `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Session holds the client's authentication token, active policy number and
// user profile. It is persisted as three independent durable keys; a field
// with a falsy value has its key removed rather than stored empty.
type Session struct {
	Token        string
	PolicyNumber string
	User         *User
}

// Authenticated reports whether the session carries a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// DisplayName returns the user's name, or empty when logged out.
func (s Session) DisplayName() string {
	if s.User == nil {
		return ""
	}
	return s.User.Name
}

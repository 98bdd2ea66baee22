// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the insurechat
// TUI. Components are pure projections of application state: given the same
// state they render the same strings.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/ui/styles"
	"github.com/morganforge/insurechat-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar. Logged in it shows a welcome line and the user's
// initials badge; logged out it shows a login hint.
type Header struct {
	Title   string
	Session model.Session
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "InsureChat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetSession updates the session projected by the header.
func (h *Header) SetSession(sess model.Session) {
	h.Session = sess
}

// View renders the header line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brand := h.theme.HeaderBrand.Render(h.Title)

	var right string
	if h.Session.Authenticated() {
		name := util.CollapseSpace(h.Session.DisplayName())
		badge := h.theme.InitialsBadge.Render(format.Initials(name))
		welcome := h.theme.HeaderWelcome.Render("Welcome, " + util.SanitizeTerminal(name))
		right = welcome + " " + badge
	} else {
		right = h.theme.HeaderHint.Render("guest — /login or /signup")
	}

	gap := width - lipgloss.Width(brand) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	line := brand + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(width).Render(line)
}

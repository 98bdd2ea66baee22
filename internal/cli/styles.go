// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Centralized styling for all CLI commands in insurechat.
//
// Colors are automatically disabled for non-TTY output (piped, redirected)
// and the NO_COLOR environment variable is respected.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/insurechat-tui/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles and headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Indigo).
			MarginBottom(1)

	// SectionStyle is used for section headers within commands.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimary).
			MarginTop(1)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(14)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// PromptStyle marks the REPL input prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// SuccessStyle marks successful outcomes.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarnStyle marks degraded but non-fatal conditions.
	WarnStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// InfoStyle is for secondary detail text.
	InfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// BrandStyle renders the product name.
	BrandStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)
)

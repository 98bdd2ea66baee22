// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator is the transient "assistant is typing" row shown while a
// chat request is in flight. The chat model shows at most one at a time.
type TypingIndicator struct {
	spinner  spinner.Model
	message  string
	isActive bool
	theme    *styles.Theme
}

// NewTypingIndicator creates an inactive typing indicator.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return TypingIndicator{
		spinner: s,
		message: "Assistant is typing",
		theme:   theme,
	}
}

// Start activates the indicator and returns the tick command that drives the
// animation.
func (t *TypingIndicator) Start() tea.Cmd {
	t.isActive = true
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.isActive = false
}

// Active reports whether the indicator is showing.
func (t *TypingIndicator) Active() bool {
	return t.isActive
}

// Update advances the spinner animation. Ticks arriving after Stop are
// dropped so a settled request cannot revive the indicator.
func (t *TypingIndicator) Update(msg tea.Msg) tea.Cmd {
	if !t.isActive {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the indicator row, empty when inactive.
func (t *TypingIndicator) View() string {
	if !t.isActive {
		return ""
	}
	return t.spinner.View() + " " + t.theme.ThinkingText.Render(t.message+"...")
}

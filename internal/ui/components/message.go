// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/ui/styles"
	"github.com/morganforge/insurechat-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript row. Backend text is sanitized before
// it reaches the terminal; user initials come from the session.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	Initials      string
	ShowTimestamp bool
	Markdown      bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetInitials sets the avatar initials used for user rows.
func (b *MessageBubble) SetInitials(initials string) {
	b.Initials = initials
}

// SetMarkdown enables markdown rendering for assistant rows.
func (b *MessageBubble) SetMarkdown(enabled bool) {
	b.Markdown = enabled
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}

	switch b.Message.Role {
	case model.RoleUser:
		return b.render(b.theme.AvatarUser, b.theme.UserBubble, b.plainText())
	case model.RoleBot:
		return b.render(b.theme.AvatarBot, b.theme.BotBubble, b.botText())
	case model.RoleError:
		return b.render(b.theme.AvatarError, b.theme.ErrorBubble, b.plainText())
	default:
		return b.render(b.theme.AvatarBot, b.theme.BotBubble, b.plainText())
	}
}

func (b *MessageBubble) render(avatarStyle, bubbleStyle lipgloss.Style, text string) string {
	avatar := avatarStyle.Render(b.Message.Role.Avatar(b.Initials))

	header := avatar + " " + b.Message.Role.DisplayName()
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		header += "  " + b.theme.Timestamp.Render(format.Timestamp(b.Message.Timestamp))
	}

	maxWidth := b.Width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}
	bubble := bubbleStyle.MaxWidth(maxWidth).Render(text)

	return header + "\n" + bubble
}

// plainText sanitizes the message body for terminal display.
func (b *MessageBubble) plainText() string {
	return util.SanitizeTerminal(b.Message.Text)
}

// botText renders the assistant reply, through glamour when markdown is on.
func (b *MessageBubble) botText() string {
	text := b.plainText()
	if !b.Markdown {
		return text
	}

	style := "light"
	if b.theme.IsDark {
		style = "dark"
	}

	width := b.Width - 12
	if width < 20 {
		width = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

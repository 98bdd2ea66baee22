// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/ui/components"
)

// View renders the full screen for the current view.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view {
	case ViewProducts:
		body = m.products.View()
	case ViewLogin, ViewSignup, ViewProfile, ViewPassword:
		body = m.renderForm()
	case ViewHelp:
		body = m.renderHelp()
	default:
		body = m.viewport.View()
	}

	sections := []string{
		m.header.View(),
		m.banner.View(),
		body,
		m.renderInputBar(),
		m.renderStatusBar(),
	}
	return strings.Join(sections, "\n")
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	initials := format.Initials(m.Session().DisplayName())

	var sb strings.Builder
	for _, msg := range m.transcript.Messages() {
		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(m.viewport.Width)
		bubble.SetInitials(initials)
		bubble.SetMarkdown(m.cfg.UI.MarkdownResponses)
		sb.WriteString(bubble.View())
		sb.WriteString("\n\n")
	}

	if m.typing.Active() {
		sb.WriteString(m.typing.View())
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) renderInputBar() string {
	if m.view != ViewChat {
		return m.theme.InputContainer.Render(
			m.theme.InputPlaceholder.Render("Esc returns to the chat"))
	}
	if m.sending {
		return m.theme.InputContainer.Render(
			m.theme.InputPlaceholder.Render("Waiting for the assistant..."))
	}
	return m.theme.InputContainer.Render(
		m.theme.InputPrompt.Render("> ") + m.input.View())
}

func (m *Model) renderStatusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(m.statusMsg)
	}

	hints := []string{
		m.theme.ShortcutKey.Render("/help") + m.theme.ShortcutDesc.Render(" commands"),
	}
	switch m.view {
	case ViewProducts:
		hints = append(hints,
			m.theme.ShortcutKey.Render("1-9")+m.theme.ShortcutDesc.Render(" toggle addon"),
			m.theme.ShortcutKey.Render("Enter")+m.theme.ShortcutDesc.Render(" buy"),
		)
	default:
		hints = append(hints,
			m.theme.ShortcutKey.Render("/products")+m.theme.ShortcutDesc.Render(" browse plans"),
		)
	}
	return m.theme.StatusBar.Render(strings.Join(hints, "  "))
}

func (m *Model) renderForm() string {
	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render(m.form.title))
	sb.WriteString("\n")

	for i, field := range m.form.fields {
		sb.WriteString(m.theme.FormLabel.Render(m.form.labels[i]))
		sb.WriteString("\n")
		sb.WriteString(field.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("Tab next field · Enter submit · Esc cancel"))
	return sb.String()
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"/login, /signup", "authenticate"},
		{"/logout", "log out and clear the conversation"},
		{"/whoami", "show the current session"},
		{"/profile [edit]", "view or edit your profile"},
		{"/passwd", "change password"},
		{"/policy <number>", "verify and link a policy"},
		{"/products", "browse the plan catalog"},
		{"/buy", "buy the selected plan"},
		{"/clear", "clear the transcript"},
		{"/export [html]", "export the conversation"},
		{"/quit", "exit"},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Commands"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(m.theme.ShortcutKey.Render(row[0]))
		sb.WriteString("  ")
		sb.WriteString(m.theme.ShortcutDesc.Render(row[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("Press any key to return"))
	return sb.String()
}

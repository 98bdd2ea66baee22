// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the slash-command handler registry. Each command is an
// individual, testable handler function.
package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/export"
	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command with its arguments.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & Meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Authentication
	"login":  handleLoginCommand,
	"signup": handleSignupCommand,
	"logout": handleLogoutCommand,
	"whoami": handleWhoamiCommand,

	// Profile
	"profile": handleProfileCommand,
	"passwd":  handlePasswdCommand,

	// Policies & Products
	"policy":   handlePolicyCommand,
	"products": handleProductsCommand,
	"plans":    handleProductsCommand,
	"buy":      handleBuyCommand,

	// Transcript
	"clear":  handleClearCommand,
	"c":      handleClearCommand,
	"export": handleExportCommand,
	"e":      handleExportCommand,
}

// handleCommand processes slash commands using the registry.
func (m *Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	handler, ok := commandHandlers[cmdName]
	if !ok {
		m.appendMessage(model.NewErrorMessage(
			"Unknown command " + parts[0] + " — try /help."))
		return m, nil
	}
	return handler(m, parts[1:])
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelpCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.view = ViewHelp
	return m, nil
}

func handleQuitCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func handleLoginCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.showLoginForm()
	return m, nil
}

func handleSignupCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.showSignupForm()
	return m, nil
}

func handleLogoutCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return m.logout()
}

func handleWhoamiCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	sess := m.Session()
	if !sess.Authenticated() {
		m.appendMessage(model.NewBotMessage("You are browsing as a guest."))
		return m, nil
	}

	text := "Logged in"
	if sess.User != nil {
		text += " as " + sess.User.Name + " <" + sess.User.Email + ">"
	}
	if sess.PolicyNumber != "" {
		text += ", policy " + sess.PolicyNumber
	}
	m.appendMessage(model.NewBotMessage(text + "."))
	return m, nil
}

func handleProfileCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if !m.Session().Authenticated() {
		m.appendMessage(model.NewErrorMessage("Please log in first."))
		return m, nil
	}

	if len(args) > 0 && args[0] == "edit" {
		m.showProfileForm()
		return m, nil
	}
	return m, profileCmd(m.client, m.timeout)
}

func handlePasswdCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if !m.Session().Authenticated() {
		m.appendMessage(model.NewErrorMessage("Please log in first."))
		return m, nil
	}
	m.showPasswordForm()
	return m, nil
}

// handlePolicyCommand verifies and links a policy number. No argument and no
// stored number is a no-op by design: nothing to verify.
func handlePolicyCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		if current := m.Session().PolicyNumber; current != "" {
			m.appendMessage(model.NewBotMessage("Active policy: " + current))
		}
		return m, nil
	}
	return m, verifyPolicyCmd(m.client, m.timeout, args[0])
}

func handleProductsCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.view = ViewProducts
	m.controller.Merge(state.Patch{LoadingProducts: state.Bool(true)})
	return m, fetchProductsCmd(m.client, m.timeout)
}

func handleBuyCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.view != ViewProducts {
		m.view = ViewProducts
		if len(m.controller.State().Products) == 0 {
			m.controller.Merge(state.Patch{LoadingProducts: state.Bool(true)})
			return m, fetchProductsCmd(m.client, m.timeout)
		}
		return m, nil
	}
	return m.startPurchase()
}

func handleClearCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.transcript.Clear()
	m.refreshViewport()
	return m, nil
}

// handleExportCommand writes the transcript (and catalog) to an HTML or
// Markdown file in the working directory.
func handleExportCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if m.transcript.Len() == 0 {
		m.appendMessage(model.NewErrorMessage("Nothing to export yet."))
		return m, nil
	}

	opts := export.DefaultOptions()
	opts.Formatter = format.NewFormatter(m.cfg.Locale.Language, m.cfg.Locale.Currency)
	opts.Theme = m.cfg.UI.Theme

	var exporter export.Exporter = export.NewMarkdownExporter(opts)
	if len(args) > 0 && strings.EqualFold(args[0], "html") {
		exporter = export.NewHTMLExporter(opts)
	}

	doc := &export.Document{
		UserName:   m.Session().DisplayName(),
		Messages:   m.transcript.Messages(),
		Products:   m.controller.State().Products,
		ExportedAt: time.Now(),
	}

	path, err := export.ExportToFile(doc, exporter, opts)
	if err != nil {
		m.appendMessage(model.NewErrorMessage("Export failed: " + err.Error()))
		return m, nil
	}
	m.appendMessage(model.NewBotMessage("Transcript exported to " + path))
	return m, nil
}

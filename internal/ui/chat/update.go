// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// fallbackReply is shown when the backend answers 2xx without usable text.
const fallbackReply = "Sorry, I could not process that. Please try again."

// Update is the Bubble Tea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		cmd := m.typing.Update(msg)
		m.refreshViewport()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatResultMsg:
		return m.handleChatResult(msg)

	case ProductsResultMsg:
		return m.handleProductsResult(msg)

	case PolicyResultMsg:
		return m.handlePolicyResult(msg)

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case LogoutDoneMsg:
		return m.handleLogoutDone()

	case ProfileResultMsg:
		return m.handleProfileResult(msg)

	case PasswordChangedMsg:
		return m.handlePasswordChanged(msg)

	case BuyResultMsg:
		return m.handleBuyResult(msg)

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg = msg.Config
			m.timeout = msg.Config.Timeout()
			m.setStatus("Configuration reloaded")
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// LAYOUT AND KEY DISPATCH
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.header.SetWidth(msg.Width)
	m.banner.SetWidth(msg.Width)
	m.products.SetWidth(msg.Width)
	m.input.Width = msg.Width - 6

	chromeHeight := 6 // header, banner, input, status
	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - chromeHeight
	m.refreshViewport()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {
	case ViewChat:
		return m.handleChatKey(msg)
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewLogin, ViewSignup, ViewProfile, ViewPassword:
		return m.handleFormKey(msg)
	case ViewHelp:
		m.view = ViewChat
		return m, nil
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.view = ViewHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.PageUp):
		m.viewport.LineUp(3)
		return m, nil

	case key.Matches(msg, m.keyMap.Down), key.Matches(msg, m.keyMap.PageDown):
		m.viewport.LineDown(3)
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.view = ViewChat
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.products.MoveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.products.MoveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Buy), key.Matches(msg, m.keyMap.Submit):
		return m.startPurchase()
	}

	// Digit keys toggle the selected product's addons.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		m.products.ToggleAddon(int(s[0] - '1'))
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.view = ViewChat
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Tab), key.Matches(msg, m.keyMap.Down):
		m.form.next()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.form.focus < len(m.form.fields)-1 {
			m.form.next()
			return m, nil
		}
		return m.submitForm()
	}

	return m, m.form.update(msg)
}

// =============================================================================
// CHAT SEND FLOW
// =============================================================================

// submitInput handles Enter in the chat view: slash commands dispatch
// immediately, anything else is a chat send.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		m.input.Reset()
		return m.handleCommand(content)
	}

	if m.sending {
		// One outstanding send at a time; the indicator lifecycle depends
		// on it.
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.sending = true

	m.appendMessage(model.NewUserMessage(content))
	tickCmd := m.typing.Start()
	m.refreshViewport()

	return m, tea.Batch(
		tickCmd,
		sendChatCmd(m.client, m.timeout, content, m.Session().PolicyNumber),
	)
}

// handleChatResult settles a send: the indicator is removed and the input
// re-enabled no matter how the request ended.
func (m *Model) handleChatResult(msg ChatResultMsg) (tea.Model, tea.Cmd) {
	m.typing.Stop()
	m.sending = false
	m.input.Focus()

	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage(msg.Err.Error()))
		return m, nil
	}

	var cmds []tea.Cmd
	reply := msg.Reply

	if reply.PolicyNumber != "" {
		m.controller.Merge(state.Patch{PolicyNumber: state.String(reply.PolicyNumber)})
	}

	text := reply.Response
	if text == "" {
		text = fallbackReply
	}
	m.appendMessage(model.NewBotMessage(text))

	if reply.RequiresPolicy {
		m.appendMessage(model.NewBotMessage(
			"Please share your policy number with /policy <number> so I can look into it."))
	}

	if reply.BookingIntent {
		m.controller.Merge(state.Patch{LoadingProducts: state.Bool(true)})
		m.view = ViewProducts
		cmds = append(cmds, fetchProductsCmd(m.client, m.timeout))
	}

	m.refreshViewport()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// CATALOG AND PURCHASE FLOWS
// =============================================================================

func (m *Model) handleProductsResult(msg ProductsResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.controller.Merge(state.Patch{LoadingProducts: state.Bool(false)})
		m.appendMessage(model.NewErrorMessage("Could not load plans: " + msg.Err.Error()))
		return m, nil
	}

	m.controller.Merge(state.Patch{
		Products:        msg.Products,
		SetProducts:     true,
		LoadingProducts: state.Bool(false),
	})
	return m, nil
}

// startPurchase begins the buy flow for the selected product. Without a
// token no request is made: the user gets an error row and the login view.
func (m *Model) startPurchase() (tea.Model, tea.Cmd) {
	prod := m.products.Selected()
	if prod == nil || m.buying {
		return m, nil
	}

	if !m.Session().Authenticated() {
		m.appendMessage(model.NewErrorMessage("Please log in to buy a policy."))
		m.showLoginForm()
		return m, nil
	}

	m.buying = true
	m.setStatus("Purchasing " + prod.Name + "...")
	addons := m.products.CheckedAddonCodes(prod.ProductCode)
	return m, buyCmd(m.client, m.timeout, prod.ProductCode, addons)
}

func (m *Model) handleBuyResult(msg BuyResultMsg) (tea.Model, tea.Cmd) {
	m.buying = false
	m.setStatus("")

	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage("Purchase failed: " + msg.Err.Error()))
		m.view = ViewChat
		return m, nil
	}

	confirmation := msg.Resp.Message
	if msg.Resp.Policy != nil {
		m.controller.Merge(state.Patch{PolicyNumber: state.String(msg.Resp.Policy.PolicyNumber)})
		if confirmation == "" {
			confirmation = fmt.Sprintf("Policy %s is now active.", msg.Resp.Policy.PolicyNumber)
		}
	}
	if confirmation == "" {
		confirmation = "Purchase complete."
	}

	m.appendMessage(model.NewBotMessage(confirmation))
	m.view = ViewChat
	return m, nil
}

// =============================================================================
// POLICY FLOW
// =============================================================================

func (m *Model) handlePolicyResult(msg PolicyResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage("Could not verify policy: " + msg.Err.Error()))
		return m, nil
	}

	policy := msg.Policy
	m.controller.Merge(state.Patch{PolicyNumber: state.String(policy.PolicyNumber)})
	m.appendMessage(model.NewBotMessage(fmt.Sprintf(
		"Linked policy %s (%s, %s).",
		policy.PolicyNumber, policy.InsuranceType, policy.Status)))
	return m, nil
}

// =============================================================================
// AUTH FLOWS
// =============================================================================

func (m *Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage(msg.Err.Error()))
		return m, nil
	}

	resp := msg.Resp
	m.controller.Merge(state.Patch{
		Token: state.String(resp.AccessToken),
		User:  resp.User,
	})

	name := ""
	if resp.User != nil {
		name = resp.User.Name
	}
	verb := "back"
	if msg.Signup {
		verb = "aboard"
	}
	if name != "" {
		m.appendMessage(model.NewBotMessage(fmt.Sprintf("Welcome %s, %s!", verb, name)))
	} else {
		m.appendMessage(model.NewBotMessage("You are logged in."))
	}

	m.view = ViewChat
	m.input.Focus()
	return m, nil
}

// logout tears the session down client-side after a best-effort server call.
func (m *Model) logout() (tea.Model, tea.Cmd) {
	if !m.Session().Authenticated() {
		m.appendMessage(model.NewErrorMessage("Not logged in."))
		return m, nil
	}
	return m, logoutCmd(m.client, m.timeout)
}

// handleLogoutDone completes the teardown regardless of the server's answer:
// legacy chat keys are scrubbed, the transcript cleared, the session reset
// and its durable keys removed.
func (m *Model) handleLogoutDone() (tea.Model, tea.Cmd) {
	if m.scrub != nil {
		_ = m.scrub()
	}

	m.transcript.Clear()
	m.controller.ResetSession()

	m.view = ViewChat
	m.refreshViewport()
	m.appendMessage(model.NewBotMessage("You have been logged out."))
	return m, nil
}

func (m *Model) handleProfileResult(msg ProfileResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage(msg.Err.Error()))
		return m, nil
	}

	if msg.Updated {
		// The welcome name in the header refreshes through the merge.
		m.controller.Merge(state.Patch{User: msg.User})
		m.appendMessage(model.NewBotMessage("Profile updated."))
		m.view = ViewChat
		m.input.Focus()
		return m, nil
	}

	if msg.User != nil {
		m.appendMessage(model.NewBotMessage(fmt.Sprintf(
			"Profile: %s <%s>", msg.User.Name, msg.User.Email)))
	}
	return m, nil
}

func (m *Model) handlePasswordChanged(msg PasswordChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendMessage(model.NewErrorMessage(msg.Err.Error()))
		return m, nil
	}

	text := msg.Message
	if text == "" {
		text = "Password changed."
	}
	m.appendMessage(model.NewBotMessage(text))
	m.view = ViewChat
	m.input.Focus()
	return m, nil
}

// =============================================================================
// FORMS
// =============================================================================

func (m *Model) showLoginForm() {
	m.view = ViewLogin
	m.form = newForm("Log in",
		formField{label: "Email", placeholder: "you@example.com"},
		formField{label: "Password", placeholder: "password", secret: true},
	)
}

func (m *Model) showSignupForm() {
	m.view = ViewSignup
	m.form = newForm("Create account",
		formField{label: "Name", placeholder: "Full name"},
		formField{label: "Email", placeholder: "you@example.com"},
		formField{label: "Password", placeholder: "password", secret: true},
	)
}

func (m *Model) showProfileForm() {
	sess := m.Session()
	name, email := "", ""
	if sess.User != nil {
		name, email = sess.User.Name, sess.User.Email
	}

	m.view = ViewProfile
	m.form = newForm("Edit profile",
		formField{label: "Name", placeholder: "Full name", value: name},
		formField{label: "Email", placeholder: "you@example.com", value: email},
	)
}

func (m *Model) showPasswordForm() {
	m.view = ViewPassword
	m.form = newForm("Change password",
		formField{label: "Current password", placeholder: "current", secret: true},
		formField{label: "New password", placeholder: "new", secret: true},
	)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	values := m.form.values()

	switch m.view {
	case ViewLogin:
		if values[0] == "" || values[1] == "" {
			m.setStatus("Email and password are required")
			return m, nil
		}
		return m, loginCmd(m.client, m.timeout, values[0], values[1])

	case ViewSignup:
		if values[0] == "" || values[1] == "" || values[2] == "" {
			m.setStatus("All fields are required")
			return m, nil
		}
		return m, signupCmd(m.client, m.timeout, values[0], values[1], values[2])

	case ViewProfile:
		return m, updateProfileCmd(m.client, m.timeout, values[0], values[1])

	case ViewPassword:
		if values[0] == "" || values[1] == "" {
			m.setStatus("Both passwords are required")
			return m, nil
		}
		return m, changePasswordCmd(m.client, m.timeout, values[0], values[1])
	}

	return m, nil
}

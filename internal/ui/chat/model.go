// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/api"
	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/state"
	"github.com/morganforge/insurechat-tui/internal/ui/components"
	"github.com/morganforge/insurechat-tui/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// View identifies which screen the model is showing.
type View int

const (
	ViewChat View = iota
	ViewProducts
	ViewLogin
	ViewSignup
	ViewProfile
	ViewPassword
	ViewHelp
)

// =============================================================================
// FORMS
// =============================================================================

// form is a small vertical stack of text inputs with one focused field.
type form struct {
	title  string
	fields []textinput.Model
	labels []string
	focus  int
}

type formField struct {
	label       string
	placeholder string
	secret      bool
	value       string
}

func newForm(title string, fields ...formField) form {
	f := form{title: title}
	for i, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 128
		ti.Width = 40
		if spec.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(spec.value)
		if i == 0 {
			ti.Focus()
		}
		f.fields = append(f.fields, ti)
		f.labels = append(f.labels, spec.label)
	}
	return f
}

// next moves focus to the following field, wrapping around.
func (f *form) next() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].Focus()
}

// values returns the trimmed field values in order.
func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i := range f.fields {
		out[i] = f.fields[i].Value()
	}
	return out
}

// update routes a message to the focused field.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the insurechat TUI.
type Model struct {
	// Styling
	theme *styles.Theme

	// Configuration
	cfg     *config.Config
	timeout time.Duration

	// Backend
	client *api.Client

	// Application state
	controller *state.Controller

	// scrub removes legacy chat-history keys on logout.
	scrub func() error

	// Conversation
	transcript *model.Transcript

	// Current screen
	view View

	// Dimensions
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textinput.Model
	typing   components.TypingIndicator
	header   *components.Header
	banner   *components.PolicyBanner
	products *components.ProductList
	form     form

	// Key bindings
	keyMap KeyMap

	// Flight flags. sending gates the chat input; buying gates the buy key.
	sending bool
	buying  bool

	statusMsg string
	quitting  bool
}

// New creates the TUI model wired to the backend client and state controller.
func New(cfg *config.Config, client *api.Client, controller *state.Controller, scrub func() error) *Model {
	theme := styles.NewTheme()
	formatter := format.NewFormatter(cfg.Locale.Language, cfg.Locale.Currency)

	input := textinput.New()
	input.Placeholder = "Ask about plans, claims or your policy..."
	input.CharLimit = 2000
	input.Width = 60
	input.Focus()

	vp := viewport.New(80, 20)

	m := &Model{
		theme:      theme,
		cfg:        cfg,
		timeout:    cfg.Timeout(),
		client:     client,
		controller: controller,
		scrub:      scrub,
		transcript: &model.Transcript{},
		view:       ViewChat,
		viewport:   vp,
		input:      input,
		typing:     components.NewTypingIndicator(theme),
		header:     components.NewHeader(theme),
		banner:     components.NewPolicyBanner(theme),
		products:   components.NewProductList(theme, formatter),
		keyMap:     DefaultKeyMap(),
	}

	// The render pipeline is a pure projection of application state: every
	// merge re-feeds the components that display session-derived data.
	controller.Subscribe(state.RenderFunc(func(s state.State) {
		m.header.SetSession(s.Session)
		m.banner.SetPolicyNumber(s.Session.PolicyNumber)
		m.products.SetLoading(s.LoadingProducts)
		if !s.LoadingProducts {
			m.products.SetProducts(s.Products)
		}
	}))

	return m
}

// Init starts the initial catalog load.
func (m *Model) Init() tea.Cmd {
	m.controller.Merge(state.Patch{LoadingProducts: state.Bool(true)})
	return tea.Batch(
		textinput.Blink,
		fetchProductsCmd(m.client, m.timeout),
	)
}

// Session returns the current session snapshot.
func (m *Model) Session() model.Session {
	return m.controller.Session()
}

// appendMessage adds a transcript row and scrolls to the bottom.
func (m *Model) appendMessage(msg *model.Message) {
	m.transcript.Append(msg)
	m.refreshViewport()
	m.viewport.GotoBottom()
}

// setStatus sets the one-line status bar message.
func (m *Model) setStatus(s string) {
	m.statusMsg = s
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/insurechat-tui/internal/api"
	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// memPersister records saved sessions in memory.
type memPersister struct {
	saved []model.Session
}

func (p *memPersister) Save(s model.Session) error {
	p.saved = append(p.saved, s)
	return nil
}

// newTestModel builds a model wired to a live test server so any request the
// model issues is observable.
func newTestModel(t *testing.T, handler http.HandlerFunc) (*Model, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if handler != nil {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Server.URL = server.URL

	controller := state.New(model.Session{}, &memPersister{})
	client := api.NewClient(server.URL).
		WithTokenSource(controller.Token).
		WithRateLimit(1000, 1000)

	return New(cfg, client, controller, nil), &calls
}

func sampleCatalog() []model.Product {
	return []model.Product{
		{
			ProductCode:   "HLTH-GOLD",
			Name:          "Health Shield Gold",
			InsuranceType: "health",
			Premium:       12500,
		},
	}
}

// =============================================================================
// SEND FLOW
// =============================================================================

func TestSubmitShowsExactlyOneTypingIndicator(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.input.SetValue("what does my plan cover?")
	_, cmd := m.submitInput()
	require.NotNil(t, cmd)

	assert.True(t, m.typing.Active())
	assert.True(t, m.sending)
	assert.Equal(t, 1, m.transcript.Len())

	// A second submit while a send is outstanding is a no-op: no second row,
	// no second indicator.
	m.input.SetValue("hello again")
	_, cmd = m.submitInput()
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.transcript.Len())
	assert.True(t, m.typing.Active())
}

func TestChatResultSettlesIndicator(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.input.SetValue("hello")
	m.submitInput()
	require.True(t, m.typing.Active())

	m.Update(ChatResultMsg{Reply: &api.ChatResponse{Response: "Hi there!"}})

	assert.False(t, m.typing.Active())
	assert.False(t, m.sending)
	assert.NotContains(t, m.viewport.View(), "Assistant is typing")

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, model.RoleBot, last.Role)
	assert.Equal(t, "Hi there!", last.Text)
}

func TestChatErrorSettlesIndicatorToo(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.input.SetValue("hello")
	m.submitInput()

	m.Update(ChatResultMsg{Err: errors.New("connection reset")})

	assert.False(t, m.typing.Active())
	assert.False(t, m.sending)

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, model.RoleError, last.Role)
}

func TestEmptyReplyGetsFallbackText(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(ChatResultMsg{Reply: &api.ChatResponse{}})

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, fallbackReply, last.Text)
}

func TestChatReplyAdoptsPolicyNumber(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(ChatResultMsg{Reply: &api.ChatResponse{
		Response:     "Your claim is in review.",
		PolicyNumber: "POL12345",
	}})

	assert.Equal(t, "POL12345", m.Session().PolicyNumber)
}

func TestRequiresPolicyAppendsPrompt(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(ChatResultMsg{Reply: &api.ChatResponse{
		Response:       "I need your policy number for that.",
		RequiresPolicy: true,
	}})

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "/policy")
}

func TestBookingIntentOpensCatalog(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(ChatResultMsg{Reply: &api.ChatResponse{
		Response:      "Here are our plans.",
		BookingIntent: true,
	}})

	assert.Equal(t, ViewProducts, m.view)
	assert.True(t, m.controller.State().LoadingProducts)
	assert.NotNil(t, cmd)
}

// =============================================================================
// AUTH FLOWS
// =============================================================================

func TestLoginUpdatesSessionAndHeader(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(AuthResultMsg{Resp: &api.AuthResponse{
		AccessToken: "T",
		User:        &model.User{UserID: 7, Name: "Ann", Email: "ann@example.com"},
	}})

	assert.Equal(t, "T", m.controller.Token())
	assert.Equal(t, ViewChat, m.view)

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "Ann")

	header := m.header.View()
	assert.Contains(t, header, "Welcome, Ann")
	assert.Contains(t, header, "A")
}

func TestSignupWelcomesAboard(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(AuthResultMsg{
		Resp:   &api.AuthResponse{AccessToken: "T", User: &model.User{Name: "Raj"}},
		Signup: true,
	})

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "aboard")
	assert.Contains(t, last.Text, "Raj")
}

func TestLogoutTearsDownEverything(t *testing.T) {
	m, _ := newTestModel(t, nil)

	scrubbed := false
	m.scrub = func() error {
		scrubbed = true
		return nil
	}

	m.controller.Merge(state.Patch{
		Token:        state.String("T"),
		PolicyNumber: state.String("POL12345"),
		User:         &model.User{Name: "Ann"},
	})
	m.appendMessage(model.NewUserMessage("hello"))
	m.appendMessage(model.NewBotMessage("hi"))

	m.Update(LogoutDoneMsg{})

	assert.True(t, scrubbed)
	assert.False(t, m.Session().Authenticated())
	assert.Empty(t, m.Session().PolicyNumber)
	assert.Nil(t, m.Session().User)

	// Only the farewell row remains.
	require.Equal(t, 1, m.transcript.Len())
	assert.Contains(t, m.transcript.Last().Text, "logged out")
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	m, calls := newTestModel(t, nil)

	_, cmd := m.logout()

	assert.Nil(t, cmd)
	assert.EqualValues(t, 0, calls.Load())
	require.NotNil(t, m.transcript.Last())
	assert.Equal(t, model.RoleError, m.transcript.Last().Role)
}

// =============================================================================
// PURCHASE FLOW
// =============================================================================

func TestUnauthenticatedBuyIssuesNoRequest(t *testing.T) {
	m, calls := newTestModel(t, nil)

	m.controller.Merge(state.Patch{
		Products:        sampleCatalog(),
		SetProducts:     true,
		LoadingProducts: state.Bool(false),
	})
	m.view = ViewProducts

	_, cmd := m.startPurchase()

	assert.Nil(t, cmd)
	assert.EqualValues(t, 0, calls.Load())
	assert.Equal(t, ViewLogin, m.view)

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, model.RoleError, last.Role)
	assert.Contains(t, last.Text, "log in")
}

func TestAuthenticatedBuyStartsRequest(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.controller.Merge(state.Patch{
		Token:           state.String("T"),
		Products:        sampleCatalog(),
		SetProducts:     true,
		LoadingProducts: state.Bool(false),
	})
	m.view = ViewProducts

	_, cmd := m.startPurchase()

	assert.NotNil(t, cmd)
	assert.True(t, m.buying)
}

func TestBuyResultAdoptsNewPolicy(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.view = ViewProducts
	m.buying = true

	m.Update(BuyResultMsg{Resp: &api.BuyResponse{
		Policy: &model.Policy{PolicyNumber: "POL90001"},
	}})

	assert.False(t, m.buying)
	assert.Equal(t, ViewChat, m.view)
	assert.Equal(t, "POL90001", m.Session().PolicyNumber)
	assert.Contains(t, m.transcript.Last().Text, "POL90001")
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.handleCommand("/frobnicate now")

	last := m.transcript.Last()
	require.NotNil(t, last)
	assert.Equal(t, model.RoleError, last.Role)
	assert.Contains(t, last.Text, "/frobnicate")
	assert.Contains(t, last.Text, "/help")
}

func TestClearCommandEmptiesTranscript(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.appendMessage(model.NewUserMessage("hello"))
	m.appendMessage(model.NewBotMessage("hi"))

	m.handleCommand("/clear")

	assert.Equal(t, 0, m.transcript.Len())
}

func TestWhoamiAsGuest(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.handleCommand("/whoami")

	require.NotNil(t, m.transcript.Last())
	assert.Contains(t, m.transcript.Last().Text, "guest")
}

func TestProfileCommandRequiresLogin(t *testing.T) {
	m, calls := newTestModel(t, nil)

	m.handleCommand("/profile")

	assert.EqualValues(t, 0, calls.Load())
	require.NotNil(t, m.transcript.Last())
	assert.Equal(t, model.RoleError, m.transcript.Last().Role)
}

func TestPolicyResultLinksPolicy(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m.Update(PolicyResultMsg{Policy: &model.Policy{
		PolicyNumber:  "POL12345",
		InsuranceType: "health",
		Status:        "active",
	}})

	assert.Equal(t, "POL12345", m.Session().PolicyNumber)
	assert.Contains(t, m.banner.View(), "POL12345")
}

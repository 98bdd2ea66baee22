// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

func sampleProducts() []model.Product {
	return []model.Product{
		{
			ProductCode:   "HLT-01",
			Name:          "Health Shield",
			InsuranceType: "health",
			CoverageLimit: 500000,
			Premium:       12500,
			Addons: []model.Addon{
				{AddonCode: "HLT-A1", Name: "Maternity Cover", AddonPremium: 2000},
				{AddonCode: "HLT-A2", Name: "Dental Cover", AddonPremium: 1500},
			},
		},
		{
			ProductCode:   "MTR-01",
			Name:          "Motor Secure",
			InsuranceType: "motor",
			CoverageLimit: 300000,
			Premium:       8000,
		},
	}
}

// =============================================================================
// PRODUCT LIST
// =============================================================================

func TestProductListLoadingShowsExactlySkeletonCount(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetLoading(true)
	p.SetProducts(sampleProducts())

	view := p.View()
	assert.True(t, p.Busy())

	skeletonLines := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "░") {
			skeletonLines++
		}
	}
	assert.Equal(t, 3*SkeletonCount, skeletonLines, "exactly three placeholder cards, three lines each")
	assert.NotContains(t, view, "Health Shield", "loading state never shows real cards")
	assert.Nil(t, p.Selected(), "no selection while loading")
}

func TestProductListSettledEmptyXorCards(t *testing.T) {
	p := NewProductList(testTheme(), nil)

	view := p.View()
	assert.Contains(t, view, "No plans available")

	p.SetProducts(sampleProducts())
	view = p.View()
	assert.NotContains(t, view, "No plans available")
	assert.Contains(t, view, "Health Shield")
	assert.Contains(t, view, "Motor Secure")
}

func TestProductListFormatsCurrency(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetProducts(sampleProducts())

	view := p.View()
	assert.Contains(t, view, "₹12,500")
	assert.Contains(t, view, "₹5,00,000")
}

func TestProductListAddonToggle(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetProducts(sampleProducts())

	assert.Empty(t, p.CheckedAddonCodes("HLT-01"))

	p.ToggleAddon(1)
	p.ToggleAddon(0)
	assert.Equal(t, []string{"HLT-A1", "HLT-A2"}, p.CheckedAddonCodes("HLT-01"),
		"codes come back in addon order, not toggle order")

	p.ToggleAddon(1)
	assert.Equal(t, []string{"HLT-A1"}, p.CheckedAddonCodes("HLT-01"))

	view := p.View()
	assert.Contains(t, view, "[x] Maternity Cover")
	assert.Contains(t, view, "[ ] Dental Cover")
}

func TestProductListSelectionMoves(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetProducts(sampleProducts())

	require.NotNil(t, p.Selected())
	assert.Equal(t, "HLT-01", p.Selected().ProductCode)

	p.MoveDown()
	assert.Equal(t, "MTR-01", p.Selected().ProductCode)

	p.MoveDown() // at the end, stays
	assert.Equal(t, "MTR-01", p.Selected().ProductCode)

	p.MoveUp()
	assert.Equal(t, "HLT-01", p.Selected().ProductCode)
}

func TestProductListSanitizesBackendText(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetProducts([]model.Product{{
		ProductCode:   "EVIL-01",
		Name:          "Shield\x1b[2J Wipe",
		InsuranceType: "health",
	}})

	view := p.View()
	assert.NotContains(t, view, "\x1b[2J", "escape sequences in product names are stripped")
	assert.Contains(t, view, "Shield")
}

func TestProductListRefreshDropsStaleChecks(t *testing.T) {
	p := NewProductList(testTheme(), nil)
	p.SetProducts(sampleProducts())
	p.ToggleAddon(0)
	require.NotEmpty(t, p.CheckedAddonCodes("HLT-01"))

	p.SetProducts([]model.Product{{ProductCode: "MTR-01", Name: "Motor Secure"}})
	assert.Empty(t, p.CheckedAddonCodes("HLT-01"))
}

// =============================================================================
// HEADER
// =============================================================================

func TestHeaderLoggedOutShowsHint(t *testing.T) {
	h := NewHeader(testTheme())
	view := h.View()
	assert.Contains(t, view, "guest")
	assert.Contains(t, view, "InsureChat")
}

func TestHeaderLoggedInShowsWelcomeAndInitials(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetSession(model.Session{
		Token: "T",
		User:  &model.User{Name: "Ann Bell"},
	})

	view := h.View()
	assert.Contains(t, view, "Welcome, Ann Bell")
	assert.Contains(t, view, "AB")
	assert.NotContains(t, view, "guest")
}

func TestHeaderEmptyNameFallsBackToU(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetSession(model.Session{Token: "T", User: &model.User{Name: ""}})

	assert.Contains(t, h.View(), "U")
}

// =============================================================================
// POLICY BANNER
// =============================================================================

func TestPolicyBannerStates(t *testing.T) {
	b := NewPolicyBanner(testTheme())

	assert.Contains(t, b.View(), "No policy selected")

	b.SetPolicyNumber("pol123")
	view := b.View()
	assert.Contains(t, view, "ACTIVE POLICY: POL123", "policy number renders uppercased")
}

// =============================================================================
// TYPING INDICATOR
// =============================================================================

func TestTypingIndicatorLifecycle(t *testing.T) {
	ti := NewTypingIndicator(testTheme())

	assert.False(t, ti.Active())
	assert.Empty(t, ti.View())

	cmd := ti.Start()
	assert.NotNil(t, cmd, "start returns the tick command")
	assert.True(t, ti.Active())
	assert.Contains(t, ti.View(), "Assistant is typing")

	ti.Stop()
	assert.False(t, ti.Active())
	assert.Empty(t, ti.View())
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

func TestMessageBubbleRolesAndAvatars(t *testing.T) {
	theme := testTheme()

	user := NewMessageBubble(model.NewUserMessage("hello"), theme)
	user.SetInitials("AB")
	view := user.View()
	assert.Contains(t, view, "AB")
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "hello")

	bot := NewMessageBubble(model.NewBotMessage("hi there"), theme)
	view = bot.View()
	assert.Contains(t, view, "AI")
	assert.Contains(t, view, "Assistant")

	errBubble := NewMessageBubble(model.NewErrorMessage("request failed"), theme)
	view = errBubble.View()
	assert.Contains(t, view, "!")
	assert.Contains(t, view, "Error")
}

func TestMessageBubbleSanitizesText(t *testing.T) {
	msg := model.NewBotMessage("reply\x1b[31m with escape")
	b := NewMessageBubble(msg, testTheme())

	assert.NotContains(t, b.View(), "\x1b[31m")
}

func TestMessageBubbleNilMessage(t *testing.T) {
	b := &MessageBubble{theme: testTheme()}
	assert.Empty(t, b.View())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/morganforge/insurechat-tui/internal/ui/styles"
	"github.com/morganforge/insurechat-tui/internal/util"
)

// =============================================================================
// POLICY BANNER COMPONENT
// =============================================================================

// PolicyBanner shows the active policy number, or a muted hint when the
// conversation is not scoped to a policy yet.
type PolicyBanner struct {
	PolicyNumber string
	Width        int
	theme        *styles.Theme
}

// NewPolicyBanner creates a new PolicyBanner component.
func NewPolicyBanner(theme *styles.Theme) *PolicyBanner {
	return &PolicyBanner{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the banner width.
func (b *PolicyBanner) SetWidth(width int) {
	b.Width = width
}

// SetPolicyNumber updates the displayed policy number.
func (b *PolicyBanner) SetPolicyNumber(policyNumber string) {
	b.PolicyNumber = policyNumber
}

// View renders the banner line.
func (b *PolicyBanner) View() string {
	if b.PolicyNumber == "" {
		return b.theme.PolicyBannerNo.Render("No policy selected — /policy <number> to link one")
	}

	label := "ACTIVE POLICY: " + strings.ToUpper(util.SanitizeTerminal(b.PolicyNumber))
	return b.theme.PolicyBanner.Render(util.TruncateWidth(label, b.Width-4))
}

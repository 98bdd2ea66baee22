// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/ui/styles"
	"github.com/morganforge/insurechat-tui/internal/util"
)

// =============================================================================
// PRODUCT LIST COMPONENT
// =============================================================================

// SkeletonCount is the number of placeholder cards shown while the catalog
// loads.
const SkeletonCount = 3

// ProductList renders the catalog panel. While loading it shows exactly
// SkeletonCount skeleton cards; settled it shows either an empty-state
// message or one card per product with addon checkboxes.
type ProductList struct {
	Products []model.Product
	Loading  bool
	Width    int

	selected int
	// checked tracks addon selection per product code.
	checked map[string]map[string]bool

	formatter *format.Formatter
	theme     *styles.Theme
}

// NewProductList creates an empty, non-loading product list.
func NewProductList(theme *styles.Theme, formatter *format.Formatter) *ProductList {
	if formatter == nil {
		formatter = format.NewFormatter(format.DefaultLocale, format.DefaultCurrency)
	}
	return &ProductList{
		Width:     80,
		checked:   make(map[string]map[string]bool),
		formatter: formatter,
		theme:     theme,
	}
}

// SetWidth updates the panel width.
func (p *ProductList) SetWidth(width int) {
	p.Width = width
}

// SetLoading toggles the skeleton state.
func (p *ProductList) SetLoading(loading bool) {
	p.Loading = loading
}

// SetProducts replaces the catalog. Selection and addon checks for products
// that disappeared are dropped.
func (p *ProductList) SetProducts(products []model.Product) {
	p.Products = products
	if p.selected >= len(products) {
		p.selected = 0
	}

	valid := make(map[string]bool, len(products))
	for _, prod := range products {
		valid[prod.ProductCode] = true
	}
	for code := range p.checked {
		if !valid[code] {
			delete(p.checked, code)
		}
	}
}

// MoveUp moves the selection cursor up.
func (p *ProductList) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves the selection cursor down.
func (p *ProductList) MoveDown() {
	if p.selected < len(p.Products)-1 {
		p.selected++
	}
}

// Selected returns the currently selected product, or nil.
func (p *ProductList) Selected() *model.Product {
	if p.Loading || p.selected < 0 || p.selected >= len(p.Products) {
		return nil
	}
	return &p.Products[p.selected]
}

// ToggleAddon flips the checkbox of the selected product's i-th addon.
func (p *ProductList) ToggleAddon(i int) {
	prod := p.Selected()
	if prod == nil || i < 0 || i >= len(prod.Addons) {
		return
	}

	if p.checked[prod.ProductCode] == nil {
		p.checked[prod.ProductCode] = make(map[string]bool)
	}
	code := prod.Addons[i].AddonCode
	p.checked[prod.ProductCode][code] = !p.checked[prod.ProductCode][code]
}

// CheckedAddonCodes returns the checked addon codes for a product, in the
// product's addon order.
func (p *ProductList) CheckedAddonCodes(productCode string) []string {
	checks := p.checked[productCode]
	if len(checks) == 0 {
		return nil
	}

	var prod *model.Product
	for i := range p.Products {
		if p.Products[i].ProductCode == productCode {
			prod = &p.Products[i]
			break
		}
	}
	if prod == nil {
		return nil
	}

	var codes []string
	for _, a := range prod.Addons {
		if checks[a.AddonCode] {
			codes = append(codes, a.AddonCode)
		}
	}
	return codes
}

// Busy reports whether the panel is in its loading state.
func (p *ProductList) Busy() bool {
	return p.Loading
}

// View renders the catalog panel.
func (p *ProductList) View() string {
	if p.Loading {
		return p.renderSkeletons()
	}
	if len(p.Products) == 0 {
		return p.theme.CatalogEmpty.Render("No plans available right now.")
	}

	cards := make([]string, 0, len(p.Products))
	for i := range p.Products {
		cards = append(cards, p.renderCard(&p.Products[i], i == p.selected))
	}
	return strings.Join(cards, "\n")
}

// renderSkeletons renders the fixed set of placeholder cards.
func (p *ProductList) renderSkeletons() string {
	line := p.theme.SkeletonLine.Render(strings.Repeat("░", p.cardWidth()-6))
	card := p.theme.SkeletonCard.Render(line + "\n" + line + "\n" + line)

	cards := make([]string, SkeletonCount)
	for i := range cards {
		cards[i] = card
	}
	return strings.Join(cards, "\n")
}

func (p *ProductList) renderCard(prod *model.Product, selected bool) string {
	w := p.cardWidth()

	var sb strings.Builder
	title := util.TruncateWidth(util.SanitizeTerminal(prod.Name), w-6)
	sb.WriteString(p.theme.ProductTitle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(p.theme.ProductType.Render(strings.ToUpper(util.SanitizeTerminal(prod.InsuranceType))))
	sb.WriteString("\n")
	sb.WriteString(p.theme.ProductDetail.Render("Coverage " + p.formatter.Currency(prod.CoverageLimit)))
	sb.WriteString("  ")
	sb.WriteString(p.theme.ProductPremium.Render(p.formatter.Currency(prod.Premium) + "/yr"))
	if prod.TenureMonths > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.theme.ProductDetail.Render(fmt.Sprintf("%d month tenure", prod.TenureMonths)))
	}
	if prod.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(p.theme.ProductDetail.Render(
			util.TruncateWidth(util.SanitizeTerminal(prod.Description), w-6)))
	}

	for _, a := range prod.Addons {
		sb.WriteString("\n")
		sb.WriteString(p.renderAddon(prod.ProductCode, a, w))
	}

	style := p.theme.ProductCard
	if selected {
		style = p.theme.ProductSelected
	}
	return style.Width(w).Render(sb.String())
}

func (p *ProductList) renderAddon(productCode string, a model.Addon, w int) string {
	box := "[ ]"
	style := p.theme.AddonUnchecked
	if p.checked[productCode][a.AddonCode] {
		box = "[x]"
		style = p.theme.AddonChecked
	}

	label := fmt.Sprintf("%s %s (+%s)", box,
		util.SanitizeTerminal(a.Name), p.formatter.Currency(a.AddonPremium))
	return style.Render(util.TruncateWidth(label, w-6))
}

func (p *ProductList) cardWidth() int {
	w := p.Width - 2
	if w < 30 {
		w = 30
	}
	if w > 72 {
		w = 72
	}
	return w
}

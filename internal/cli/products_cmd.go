// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// products_cmd.go - Catalog, policy and purchase commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/morganforge/insurechat-tui/internal/model"
	"github.com/morganforge/insurechat-tui/internal/state"
	"github.com/morganforge/insurechat-tui/internal/util"
)

// HandleProducts lists the plan catalog as an aligned table.
func HandleProducts(app *App, args Args) error {
	ctx, cancel := app.requestContext()
	defer cancel()

	products, err := app.Client.Products(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		return outputJSON(products)
	}

	if len(products) == 0 {
		fmt.Println(InfoStyle.Render("No plans available right now."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Available Plans"))
	fmt.Print(renderProductTable(products, app))
	fmt.Println()
	fmt.Println(InfoStyle.Render("Buy with: insurechat buy <code> [--addons A,B]"))
	return nil
}

// renderProductTable lays the catalog out in display-width-aware columns.
func renderProductTable(products []model.Product, app *App) string {
	formatter := app.Formatter()

	type row struct{ code, name, typ, premium, cover, addons string }
	rows := make([]row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row{
			code:    util.SanitizeTerminal(p.ProductCode),
			name:    util.TruncateWidth(util.SanitizeTerminal(p.Name), 28),
			typ:     strings.ToUpper(p.InsuranceType),
			premium: formatter.Currency(p.Premium),
			cover:   formatter.Currency(p.CoverageLimit),
			addons:  fmt.Sprintf("%d", len(p.Addons)),
		})
	}

	header := row{"CODE", "PLAN", "TYPE", "PREMIUM", "COVER", "ADDONS"}
	widths := []int{
		runewidth.StringWidth(header.code),
		runewidth.StringWidth(header.name),
		runewidth.StringWidth(header.typ),
		runewidth.StringWidth(header.premium),
		runewidth.StringWidth(header.cover),
		runewidth.StringWidth(header.addons),
	}
	for _, r := range rows {
		for i, cell := range []string{r.code, r.name, r.typ, r.premium, r.cover, r.addons} {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string { return runewidth.FillRight(s, w) }
	var sb strings.Builder
	writeRow := func(r row) {
		sb.WriteString("  ")
		sb.WriteString(pad(r.code, widths[0]))
		sb.WriteString("  ")
		sb.WriteString(pad(r.name, widths[1]))
		sb.WriteString("  ")
		sb.WriteString(pad(r.typ, widths[2]))
		sb.WriteString("  ")
		sb.WriteString(pad(r.premium, widths[3]))
		sb.WriteString("  ")
		sb.WriteString(pad(r.cover, widths[4]))
		sb.WriteString("  ")
		sb.WriteString(r.addons)
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
	return sb.String()
}

// HandlePolicy verifies a policy number and links it to the session.
func HandlePolicy(app *App, args Args) error {
	number := strings.TrimSpace(args.Query)
	if number == "" {
		current := app.Controller.Session().PolicyNumber
		if current == "" {
			fmt.Println(InfoStyle.Render("No policy linked. Usage: insurechat policy <number>"))
			return nil
		}
		fmt.Printf("%s %s\n", LabelStyle.Render("Policy"), ValueStyle.Render(current))
		return nil
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	policy, err := app.Client.Policy(ctx, number)
	if err != nil {
		return err
	}

	if err := app.Controller.Merge(state.Patch{
		PolicyNumber: state.String(policy.PolicyNumber),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if args.JSON {
		return outputJSON(policy)
	}

	formatter := app.Formatter()
	fmt.Printf("%s Linked policy %s\n", SuccessStyle.Render("[OK]"), policy.PolicyNumber)
	fmt.Printf("%s %s\n", LabelStyle.Render("Type"), ValueStyle.Render(strings.ToUpper(policy.InsuranceType)))
	fmt.Printf("%s %s\n", LabelStyle.Render("Status"), ValueStyle.Render(policy.Status))
	fmt.Printf("%s %s\n", LabelStyle.Render("Cover"), ValueStyle.Render(formatter.Currency(policy.CoverageLimit)))
	fmt.Printf("%s %s\n", LabelStyle.Render("Premium"), ValueStyle.Render(formatter.Currency(policy.Premium)))
	return nil
}

// HandleBuy purchases a plan. Requires a logged-in session; without one no
// request is made.
func HandleBuy(app *App, args Args) error {
	code := strings.TrimSpace(args.Query)
	if code == "" {
		return fmt.Errorf("usage: insurechat buy <product-code> [--addons A,B]")
	}

	if !app.Controller.Session().Authenticated() {
		return fmt.Errorf("please log in to buy a policy: insurechat login")
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	resp, err := app.Client.BuyPolicy(ctx, code, args.AddonCodes())
	if err != nil {
		return err
	}

	if resp.Policy != nil {
		if err := app.Controller.Merge(state.Patch{
			PolicyNumber: state.String(resp.Policy.PolicyNumber),
		}); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	if args.JSON {
		return outputJSON(resp)
	}

	msg := resp.Message
	if msg == "" && resp.Policy != nil {
		msg = fmt.Sprintf("Policy %s is now active.", resp.Policy.PolicyNumber)
	}
	if msg == "" {
		msg = "Purchase complete."
	}
	fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), msg)
	return nil
}

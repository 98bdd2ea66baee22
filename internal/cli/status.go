// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for insurechat.
//
// Command: status
// Short:   Display backend and session status
// Aliases: s
//
// Examples:
//   insurechat status             Show status
//   insurechat status --json      Status as JSON
package cli

import (
	"fmt"
)

// HandleStatus pings the backend and prints connectivity plus session
// details.
func HandleStatus(app *App, args Args) error {
	ctx, cancel := app.requestContext()
	defer cancel()

	health, healthErr := app.Client.Health(ctx)
	sess := app.Controller.Session()

	if args.JSON {
		data := map[string]interface{}{
			"server":        app.Client.BaseURL(),
			"reachable":     healthErr == nil,
			"authenticated": sess.Authenticated(),
			"policy_number": sess.PolicyNumber,
		}
		if healthErr == nil {
			data["status"] = health.Status
		} else {
			data["error"] = healthErr.Error()
		}
		return outputJSON(data)
	}

	fmt.Println(TitleStyle.Render("insurechat status"))

	fmt.Printf("%s %s\n", LabelStyle.Render("Server"), ValueStyle.Render(app.Client.BaseURL()))
	if healthErr != nil {
		fmt.Printf("%s %s\n", LabelStyle.Render("Backend"),
			ErrorStyle.Render("unreachable: "+healthErr.Error()))
	} else {
		status := health.Status
		if status == "" {
			status = "ok"
		}
		fmt.Printf("%s %s\n", LabelStyle.Render("Backend"), SuccessStyle.Render(status))
	}

	if sess.Authenticated() {
		fmt.Printf("%s %s\n", LabelStyle.Render("Account"),
			SuccessStyle.Render("logged in as "+sess.DisplayName()))
	} else {
		fmt.Printf("%s %s\n", LabelStyle.Render("Account"), InfoStyle.Render("guest"))
	}

	policy := sess.PolicyNumber
	if policy == "" {
		policy = "none linked"
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("Policy"), ValueStyle.Render(policy))

	fmt.Printf("%s %s / %s\n", LabelStyle.Render("Locale"),
		ValueStyle.Render(app.Cfg.Locale.Language), ValueStyle.Render(app.Cfg.Locale.Currency))
	return nil
}

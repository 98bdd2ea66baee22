// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the insurechat CLI.
//
// Command: ask
// Short:   Ask the assistant a single question
//
// Examples:
//   insurechat ask "What does my health plan cover?"
//   insurechat ask --policy POL12345 "When does my cover end?"
//   insurechat ask "List your plans" --json
package cli

import (
	"fmt"

	"github.com/morganforge/insurechat-tui/internal/state"
)

// HandleAsk sends one question and prints the reply.
func HandleAsk(app *App, args Args) error {
	if args.Query == "" {
		return fmt.Errorf("usage: insurechat ask \"your question\"")
	}

	policyNumber := app.Controller.Session().PolicyNumber
	if override, ok := args.Options["policy"]; ok && override != "" {
		policyNumber = override
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	reply, err := app.Client.Chat(ctx, args.Query, policyNumber)
	if err != nil {
		return err
	}

	if reply.PolicyNumber != "" && args.Options["policy"] == "" {
		if err := app.Controller.Merge(state.Patch{
			PolicyNumber: state.String(reply.PolicyNumber),
		}); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	if args.JSON {
		return outputJSON(reply)
	}

	text := reply.Response
	if text == "" {
		text = "Sorry, I could not process that. Please try again."
	}
	printReply(app, args, text)

	if reply.RequiresPolicy {
		fmt.Println(WarnStyle.Render("Link a policy with 'insurechat policy <number>' to go further."))
	}
	return nil
}

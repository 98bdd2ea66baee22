// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config show/set/path commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/morganforge/insurechat-tui/internal/config"
)

// HandleConfig shows or mutates the persisted configuration.
func HandleConfig(app *App, args Args) error {
	switch args.Subcommand {
	case "show", "":
		return showConfig(app, args)
	case "set":
		return setConfig(app, args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q; use show, set or path", args.Subcommand)
	}
}

func showConfig(app *App, args Args) error {
	cfg := app.Cfg

	if args.JSON {
		return outputJSON(cfg)
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	entries := []struct{ key, value string }{
		{"server.url", cfg.Server.URL},
		{"server.timeout_secs", strconv.Itoa(cfg.Server.TimeoutSecs)},
		{"ui.theme", cfg.UI.Theme},
		{"ui.markdown_responses", strconv.FormatBool(cfg.UI.MarkdownResponses)},
		{"locale.language", cfg.Locale.Language},
		{"locale.currency", cfg.Locale.Currency},
		{"storage.backend", cfg.Storage.Backend},
	}
	for _, e := range entries {
		fmt.Printf("  %s %s\n",
			LabelStyle.Width(24).Render(e.key), ValueStyle.Render(e.value))
	}
	return nil
}

func setConfig(app *App, args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("usage: insurechat config set <key> <value>")
	}

	cfg := app.Cfg
	key, value := args.ConfigKey, args.ConfigVal

	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be an integer: %w", err)
		}
		cfg.Server.TimeoutSecs = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.markdown_responses":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("markdown_responses must be true or false: %w", err)
		}
		cfg.UI.MarkdownResponses = b
	case "locale.language":
		cfg.Locale.Language = value
	case "locale.currency":
		cfg.Locale.Currency = value
	case "storage.backend":
		cfg.Storage.Backend = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

// insurechat - insurance assistant chat for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/insurechat-tui/internal/api"
	"github.com/morganforge/insurechat-tui/internal/cli"
	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/session"
	"github.com/morganforge/insurechat-tui/internal/state"
	"github.com/morganforge/insurechat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	// Help and version need no backend wiring.
	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	case cli.CmdVersion:
		cli.HandleVersion(args)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(cli.ExitError)
	}
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}
	if args.Plain {
		cfg.UI.MarkdownResponses = false
	}

	kv, closeStore, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open session storage: %v\n", err)
		os.Exit(cli.ExitError)
	}
	defer closeStore()

	store := session.NewStore(kv)
	restored, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore session: %v\n", err)
	}

	controller := state.New(restored, store)
	client := api.NewClient(cfg.Server.URL).WithTokenSource(controller.Token)
	scrub := func() error { return session.ScrubChatHistory(kv) }

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg, client, controller, scrub); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitError)
		}
		return
	}

	app := &cli.App{
		Cfg:        cfg,
		Client:     client,
		Controller: controller,
		Scrub:      scrub,
	}
	if err := dispatch(cmd, app, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// openStorage picks the configured session backend. The returned closer is
// a no-op for the file backend.
func openStorage(cfg *config.Config) (session.KeyValueStore, func(), error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Storage.Backend == "sqlite" {
		store, err := session.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	store, err := session.NewFileStoreWithDir(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// runTUI starts the Bubble Tea program with live config reload.
func runTUI(cfg *config.Config, client *api.Client, controller *state.Controller, scrub func() error) error {
	model := chat.New(cfg, client, controller, scrub)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			program.Send(chat.ConfigReloadedMsg{Config: next})
		})
		if err == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	_, err := program.Run()
	return err
}

func dispatch(cmd cli.Command, app *cli.App, args cli.Args) error {
	switch cmd {
	case cli.CmdAsk:
		return cli.HandleAsk(app, args)
	case cli.CmdChat:
		return cli.HandleChat(app, args)
	case cli.CmdLogin:
		return cli.HandleLogin(app, args)
	case cli.CmdSignup:
		return cli.HandleSignup(app, args)
	case cli.CmdLogout:
		return cli.HandleLogout(app, args)
	case cli.CmdWhoami:
		return cli.HandleWhoami(app, args)
	case cli.CmdProfile:
		return cli.HandleProfile(app, args)
	case cli.CmdPasswd:
		return cli.HandlePasswd(app, args)
	case cli.CmdProducts:
		return cli.HandleProducts(app, args)
	case cli.CmdPolicy:
		return cli.HandlePolicy(app, args)
	case cli.CmdBuy:
		return cli.HandleBuy(app, args)
	case cli.CmdStatus:
		return cli.HandleStatus(app, args)
	case cli.CmdConfig:
		return cli.HandleConfig(app, args)
	default:
		cli.PrintUsage()
		return nil
	}
}

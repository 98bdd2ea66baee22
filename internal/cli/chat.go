// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the insurechat CLI.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   insurechat chat               Start interactive chat
//   insurechat chat --plain       Disable markdown rendering
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /policy <number>    Verify and link a policy
//   /products           List available plans
//   /whoami             Show the current session
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/morganforge/insurechat-tui/internal/config"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// ChatREPL wraps liner with persistent input history.
type ChatREPL struct {
	line        *liner.State
	historyFile string
}

// NewChatREPL creates the REPL and loads saved history.
func NewChatREPL() *ChatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &ChatREPL{
		line:        line,
		historyFile: filepath.Join(configDir, "input_history"),
	}
	r.loadHistory()
	return r
}

func (r *ChatREPL) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line with history navigation.
func (r *ChatREPL) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (r *ChatREPL) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// HandleChat runs the interactive REPL against the assistant backend.
func HandleChat(app *App, args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	repl := NewChatREPL()
	defer repl.Close()

	if !args.Quiet {
		printChatWelcome(app)
	}

	start := time.Now()
	queries := 0

	for {
		input, err := repl.ReadInput(PromptStyle.Render("insurechat> "))
		if err != nil {
			// Ctrl+C or Ctrl+D both end the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			printChatSummary(queries, time.Since(start))
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing, err := handleReplCommand(app, args, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				printChatSummary(queries, time.Since(start))
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printChatSummary(queries, time.Since(start))
			return nil
		}

		if err := askOnce(app, args, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			continue
		}
		queries++
	}
}

// handleReplCommand processes in-chat slash commands. Returns false to
// exit the REPL.
func handleReplCommand(app *App, args Args, input string) (bool, error) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	rest := parts[1:]

	switch cmd {
	case "/help", "/h", "/?":
		printReplHelp()
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	case "/whoami":
		return true, HandleWhoami(app, args)

	case "/products", "/plans":
		return true, HandleProducts(app, args)

	case "/policy":
		policyArgs := args
		if len(rest) > 0 {
			policyArgs.Query = rest[0]
		}
		return true, HandlePolicy(app, policyArgs)

	default:
		return true, fmt.Errorf("unknown command %s (type /help for commands)", cmd)
	}
}

// askOnce sends one message scoped to the linked policy and prints the
// reply, rendering markdown on a TTY.
func askOnce(app *App, args Args, message string) error {
	ctx, cancel := app.requestContext()
	defer cancel()

	reply, err := app.Client.Chat(ctx, message, app.Controller.Session().PolicyNumber)
	if err != nil {
		return err
	}

	// The backend can resolve a policy number from the conversation; adopt
	// it so follow-up questions stay scoped.
	if reply.PolicyNumber != "" {
		if err := app.Controller.Merge(state.Patch{
			PolicyNumber: state.String(reply.PolicyNumber),
		}); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	text := reply.Response
	if text == "" {
		text = "Sorry, I could not process that. Please try again."
	}

	fmt.Println()
	printReply(app, args, text)
	fmt.Println()

	if reply.RequiresPolicy {
		fmt.Println(WarnStyle.Render("Link a policy with /policy <number> to go further."))
	}
	if reply.BookingIntent {
		fmt.Println(InfoStyle.Render("Tip: browse plans with /products and buy with 'insurechat buy <code>'."))
	}
	return nil
}

// printReply renders markdown when the output is a TTY and markdown is
// enabled; otherwise prints wrapped plain text.
func printReply(app *App, args Args, text string) {
	useMarkdown := IsStdoutTTY() && !args.Plain && app.Cfg.UI.MarkdownResponses
	if useMarkdown {
		style := glamour.WithStandardStyle("dark")
		if app.Cfg.UI.Theme == "light" {
			style = glamour.WithStandardStyle("light")
		}
		renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(GetTerminalWidth()-2))
		if err == nil {
			if rendered, err := renderer.Render(text); err == nil {
				fmt.Print(rendered)
				return
			}
		}
	}
	fmt.Println(WrapText(text, GetTerminalWidth()))
}

func printChatWelcome(app *App) {
	fmt.Println()
	fmt.Println(BrandStyle.Render("insurechat interactive chat"))
	fmt.Println(InfoStyle.Render(strings.Repeat("─", 30)))

	sess := app.Controller.Session()
	if sess.Authenticated() {
		fmt.Printf("%s %s\n", InfoStyle.Render("Account:"),
			SuccessStyle.Render(sess.DisplayName()))
	} else {
		fmt.Printf("%s %s\n", InfoStyle.Render("Account:"),
			WarnStyle.Render("guest (login with 'insurechat login')"))
	}
	if sess.PolicyNumber != "" {
		fmt.Printf("%s %s\n", InfoStyle.Render("Policy:"),
			ValueStyle.Render(sess.PolicyNumber))
	}

	fmt.Println()
	fmt.Println(InfoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

func printReplHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/policy <number>", "Verify and link a policy"},
		{"/products", "List available plans"},
		{"/whoami", "Show the current session"},
		{"/quit, /q", "Exit chat"},
	}

	fmt.Println()
	fmt.Println(SectionStyle.Render("Available Commands"))
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			SuccessStyle.Render(fmt.Sprintf("%-18s", c.cmd)),
			InfoStyle.Render(c.desc))
	}
	fmt.Println()
	fmt.Println(InfoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

func printChatSummary(queries int, elapsed time.Duration) {
	if queries == 0 {
		fmt.Println(InfoStyle.Render("Goodbye!"))
		return
	}
	fmt.Println()
	fmt.Printf("%s %d questions in %s\n",
		InfoStyle.Render("Session:"), queries, elapsed.Round(time.Second))
	fmt.Println(InfoStyle.Render("Goodbye!"))
}

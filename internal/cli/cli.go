// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for insurechat.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdSignup
	CmdLogout
	CmdWhoami
	CmdProfile
	CmdPasswd
	CmdProducts
	CmdPolicy
	CmdBuy
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	Plain   bool   // Disable markdown rendering
	Server  string // Override the backend URL

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --addons, --email)
	Options map[string]string
}

const usageText = `insurechat - insurance assistant for the terminal

Insurechat talks to your insurer's assistant backend from the command
line: chat about plans and claims, browse the catalog, link a policy
and buy cover without leaving the terminal.

Usage:
  insurechat                      Start TUI (default)
  insurechat ask "question"       Ask a single question
  insurechat chat                 Interactive chat REPL
  insurechat login                Log in to your account
  insurechat signup               Create an account
  insurechat logout               Log out and clear local data
  insurechat whoami               Show the current session
  insurechat profile [edit]       View or edit your profile
  insurechat passwd               Change your password
  insurechat products, plans      List available plans
  insurechat policy <number>      Verify and link a policy
  insurechat buy <product-code>   Buy a plan
  insurechat status, s            Show backend and session status
  insurechat config [show|set]    Configuration
  insurechat version              Show version

Buy Options:
  insurechat buy HLTH-GOLD --addons MAT,OPD
                                  Buy with add-on covers

Profile Options:
  insurechat profile edit --name "Ann Joseph" --email ann@example.com

Global Flags:
  --server URL    Override the backend URL for this invocation
  --plain         Disable markdown rendering of replies
  --json          Output machine-readable JSON where supported
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Examples:
  insurechat ask "What does my health plan cover?"
  insurechat chat
  insurechat policy POL12345
  insurechat products --json
  insurechat status

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("insurechat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// No arguments means the full-screen TUI.
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "login":
		return CmdLogin, parsedArgs

	case "signup", "register":
		return CmdSignup, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "whoami":
		return CmdWhoami, parsedArgs

	case "profile":
		parseProfileArgs(&parsedArgs, remaining)
		return CmdProfile, parsedArgs

	case "passwd", "password":
		return CmdPasswd, parsedArgs

	case "products", "plans":
		return CmdProducts, parsedArgs

	case "policy":
		if len(remaining) > 0 {
			parsedArgs.Query = remaining[0]
		}
		return CmdPolicy, parsedArgs

	case "buy":
		parseBuyArgs(&parsedArgs, remaining)
		return CmdBuy, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown word: treat the whole line as a one-shot question.
		parsedArgs.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--plain":
			parsedArgs.Plain = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs joins the non-flag words into the question.
func parseAskArgs(args *Args, remaining []string) {
	var query []string
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--policy" && i+1 < len(remaining):
			args.Options["policy"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--policy="):
			args.Options["policy"] = strings.TrimPrefix(arg, "--policy=")
		case !strings.HasPrefix(arg, "-"):
			query = append(query, arg)
		}
	}
	args.Query = strings.Join(query, " ")
}

// parseProfileArgs parses profile subcommand and edit options.
func parseProfileArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "edit" || arg == "show":
			args.Subcommand = arg
		case arg == "--name" && i+1 < len(remaining):
			args.Options["name"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--name="):
			args.Options["name"] = strings.TrimPrefix(arg, "--name=")
		case arg == "--email" && i+1 < len(remaining):
			args.Options["email"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--email="):
			args.Options["email"] = strings.TrimPrefix(arg, "--email=")
		}
	}
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
}

// parseBuyArgs parses the product code and the addon list.
func parseBuyArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--addons" && i+1 < len(remaining):
			args.Options["addons"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--addons="):
			args.Options["addons"] = strings.TrimPrefix(arg, "--addons=")
		case !strings.HasPrefix(arg, "-") && args.Query == "":
			args.Query = arg
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
}

// AddonCodes splits the --addons option into a code list.
func (a Args) AddonCodes() []string {
	raw, ok := a.Options["addons"]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		outputJSON(map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
		})
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}

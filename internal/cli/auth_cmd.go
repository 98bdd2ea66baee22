// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Account commands: login, signup, logout, whoami, profile,
// passwd.
//
// Passwords are read without echo. The session controller persists the
// token and profile immediately on success, so the TUI picks the login up
// on its next start.
package cli

import (
	"fmt"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/state"
)

// HandleLogin prompts for credentials and stores the session on success.
func HandleLogin(app *App, args Args) error {
	if err := RequiresTTY("log in"); err != nil {
		return err
	}

	email := promptInput("Email: ")
	if email == "" {
		return fmt.Errorf("email is required")
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	resp, err := app.Client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := app.Controller.Merge(state.Patch{
		Token: state.String(resp.AccessToken),
		User:  resp.User,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	name := app.Controller.Session().DisplayName()
	fmt.Printf("%s Welcome back, %s (%s)\n",
		SuccessStyle.Render("[OK]"), name, format.Initials(name))
	return nil
}

// HandleSignup registers a new account and logs it in.
func HandleSignup(app *App, args Args) error {
	if err := RequiresTTY("sign up"); err != nil {
		return err
	}

	name := promptInput("Name: ")
	email := promptInput("Email: ")
	if name == "" || email == "" {
		return fmt.Errorf("name and email are required")
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password == "" || password != confirm {
		return fmt.Errorf("passwords are empty or do not match")
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	resp, err := app.Client.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	if err := app.Controller.Merge(state.Patch{
		Token: state.String(resp.AccessToken),
		User:  resp.User,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("%s Welcome aboard, %s!\n",
		SuccessStyle.Render("[OK]"), app.Controller.Session().DisplayName())
	return nil
}

// HandleLogout tears the session down. The server call is best effort;
// local keys are cleared regardless.
func HandleLogout(app *App, args Args) error {
	if !app.Controller.Session().Authenticated() {
		fmt.Println(InfoStyle.Render("Not logged in."))
		return nil
	}

	ctx, cancel := app.requestContext()
	defer cancel()
	if err := app.Client.Logout(ctx); err != nil && args.Verbose {
		fmt.Println(WarnStyle.Render("server logout failed: " + err.Error()))
	}

	if app.Scrub != nil {
		_ = app.Scrub()
	}
	if err := app.Controller.ResetSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	fmt.Printf("%s You have been logged out.\n", SuccessStyle.Render("[OK]"))
	return nil
}

// HandleWhoami prints the current session.
func HandleWhoami(app *App, args Args) error {
	sess := app.Controller.Session()

	if args.JSON {
		data := map[string]interface{}{
			"authenticated": sess.Authenticated(),
			"policy_number": sess.PolicyNumber,
		}
		if sess.User != nil {
			data["name"] = sess.User.Name
			data["email"] = sess.User.Email
		}
		return outputJSON(data)
	}

	if !sess.Authenticated() {
		fmt.Println(InfoStyle.Render("Browsing as a guest."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Session"))
	if sess.User != nil {
		fmt.Printf("%s %s\n", LabelStyle.Render("Name"), ValueStyle.Render(sess.User.Name))
		fmt.Printf("%s %s\n", LabelStyle.Render("Email"), ValueStyle.Render(sess.User.Email))
	}
	policy := sess.PolicyNumber
	if policy == "" {
		policy = "none linked"
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("Policy"), ValueStyle.Render(policy))
	return nil
}

// HandleProfile shows or edits the account profile.
func HandleProfile(app *App, args Args) error {
	if !app.Controller.Session().Authenticated() {
		return fmt.Errorf("please log in first")
	}

	if args.Subcommand == "edit" {
		return editProfile(app, args)
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	user, err := app.Client.Profile(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		return outputJSON(user)
	}

	fmt.Println(TitleStyle.Render("Profile"))
	fmt.Printf("%s %s\n", LabelStyle.Render("Name"), ValueStyle.Render(user.Name))
	fmt.Printf("%s %s\n", LabelStyle.Render("Email"), ValueStyle.Render(user.Email))
	return nil
}

func editProfile(app *App, args Args) error {
	sess := app.Controller.Session()
	name, email := args.Options["name"], args.Options["email"]

	// Unspecified fields keep their current values.
	if sess.User != nil {
		if name == "" {
			name = sess.User.Name
		}
		if email == "" {
			email = sess.User.Email
		}
	}
	if name == "" && email == "" {
		return fmt.Errorf("nothing to update; pass --name or --email")
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	user, err := app.Client.UpdateProfile(ctx, name, email)
	if err != nil {
		return err
	}

	if err := app.Controller.Merge(state.Patch{User: user}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("%s Profile updated.\n", SuccessStyle.Render("[OK]"))
	return nil
}

// HandlePasswd changes the account password.
func HandlePasswd(app *App, args Args) error {
	if !app.Controller.Session().Authenticated() {
		return fmt.Errorf("please log in first")
	}
	if err := RequiresTTY("change the password"); err != nil {
		return err
	}

	current, err := promptPassword("Current password: ")
	if err != nil {
		return err
	}
	next, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	if next == "" || next != confirm {
		return fmt.Errorf("new passwords are empty or do not match")
	}

	ctx, cancel := app.requestContext()
	defer cancel()

	msg, err := app.Client.ChangePassword(ctx, current, next)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Password changed."
	}
	fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), msg)
	return nil
}

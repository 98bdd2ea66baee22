// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state holds the client's single source of truth for rendering and
// funnels every mutation through one merge-persist-notify entry point.
package state

import (
	"github.com/morganforge/insurechat-tui/internal/model"
)

// State is the application state projected by the render pipeline.
type State struct {
	Session         model.Session
	Products        []model.Product
	LoadingProducts bool
}

// Patch is a partial state update. Nil pointer fields are left untouched;
// ClearUser removes the user profile (a nil User field means "no change").
type Patch struct {
	Token           *string
	PolicyNumber    *string
	User            *model.User
	ClearUser       bool
	Products        []model.Product
	SetProducts     bool
	LoadingProducts *bool
}

// Renderer is notified after every merge. Implementations project the new
// state onto their output; renders must be idempotent because independent
// flows may interleave merges.
type Renderer interface {
	Render(State)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(State)

// Render implements Renderer.
func (f RenderFunc) Render(s State) { f(s) }

// Persister stores the session-relevant subset of the state. The session
// store satisfies this.
type Persister interface {
	Save(model.Session) error
}

// Controller owns the state. All mutations go through Merge, which persists
// the session and then notifies every renderer, so storage and screen never
// drift from memory. Mutations happen on the UI event loop only; there is no
// locking because handlers never interleave mid-execution.
type Controller struct {
	state     State
	persister Persister
	renderers []Renderer
}

// New creates a controller seeded with the restored session.
func New(initial model.Session, persister Persister) *Controller {
	return &Controller{
		state:     State{Session: initial},
		persister: persister,
	}
}

// Subscribe registers a renderer. It is immediately rendered once so a late
// subscriber cannot miss the current state.
func (c *Controller) Subscribe(r Renderer) {
	c.renderers = append(c.renderers, r)
	r.Render(c.state)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the current session.
func (c *Controller) Session() model.Session {
	return c.state.Session
}

// Token returns the current bearer token, empty when logged out.
// Satisfies the API client's token source.
func (c *Controller) Token() string {
	return c.state.Session.Token
}

// Merge applies a patch, persists the session subset, then re-renders every
// target. Persistence happens before notification: immediately after any
// mutation the durable keys reflect the in-memory session.
func (c *Controller) Merge(p Patch) error {
	if p.Token != nil {
		c.state.Session.Token = *p.Token
	}
	if p.PolicyNumber != nil {
		c.state.Session.PolicyNumber = *p.PolicyNumber
	}
	if p.ClearUser {
		c.state.Session.User = nil
	} else if p.User != nil {
		c.state.Session.User = p.User
	}
	if p.SetProducts {
		c.state.Products = p.Products
	}
	if p.LoadingProducts != nil {
		c.state.LoadingProducts = *p.LoadingProducts
	}

	var err error
	if c.persister != nil {
		err = c.persister.Save(c.state.Session)
	}

	for _, r := range c.renderers {
		r.Render(c.state)
	}
	return err
}

// ResetSession clears token, user and policy number in one merge. Used by
// the logout flow.
func (c *Controller) ResetSession() error {
	empty := ""
	return c.Merge(Patch{
		Token:        &empty,
		PolicyNumber: &empty,
		ClearUser:    true,
	})
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches inline.
func Bool(b bool) *bool { return &b }

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the insurance backend.
//
// All business logic lives server-side; this client shapes requests (bearer
// auth where an endpoint needs it, JSON bodies), normalizes error payloads
// into APIError, and parses success bodies tolerantly: a 2xx response that
// fails to parse yields a zero payload, never an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is where the backend listens in local development.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the per-request timeout applied by callers' contexts.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps response bodies so a misbehaving server cannot
	// exhaust memory.
	maxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Error variables for common client errors.
var (
	// ErrUnauthorized indicates a missing or rejected bearer token.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrUnavailable indicates the backend could not be reached at all.
	ErrUnavailable = errors.New("backend unavailable")
)

// authMode says how an endpoint uses the bearer token.
type authMode int

const (
	authNone     authMode = iota // never send a token
	authOptional                 // send the token when one exists
	authRequired                 // refuse to call without a token
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend's {detail} payload when the body had one.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
}

// Error implements the error interface. The backend's own detail message is
// preferred; without one the method and path identify the failed call.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s %s failed", e.Method, e.Path)
}

// Is reports 401 responses as ErrUnauthorized so callers can gate on it.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TokenSource supplies the current bearer token, empty when logged out. The
// state controller satisfies this, so a login in one flow is visible to every
// later request without rewiring the client.
type TokenSource func() string

// Client talks to the insurance backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	token      TokenSource
	userAgent  string
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		// Interactive traffic only; the burst absorbs a product refresh
		// landing next to a chat send.
		limiter:   rate.NewLimiter(rate.Limit(5), 10),
		token:     func() string { return "" },
		userAgent: "insurechat/0.1.0",
	}
}

// WithTokenSource sets where bearer tokens come from.
func (c *Client) WithTokenSource(src TokenSource) *Client {
	if src != nil {
		c.token = src
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithRateLimit sets the request throttle.
func (c *Client) WithRateLimit(perSecond float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// WithUserAgent sets the User-Agent header value.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. reqBody (when non-nil) is marshaled to JSON; on a
// 2xx response out (when non-nil) is filled from the body, tolerating bodies
// that fail to parse. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, auth authMode, reqBody, out any) error {
	token := c.token()
	if auth == authRequired && token == "" {
		return fmt.Errorf("%w: %s %s needs a login", ErrUnauthorized, method, path)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != authNone && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		// Best effort: an unparseable success body leaves out zero-valued.
		_ = json.Unmarshal(raw, out)
	}
	return nil
}

// errorFromResponse normalizes a non-2xx body. The backend reports errors as
// {"detail": "..."}; anything else falls back to a generic message.
func (c *Client) errorFromResponse(method, path string, status int, raw []byte) error {
	apiErr := &APIError{Method: method, Path: path, Status: status}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client to a handler and disables throttling delays.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL).WithRateLimit(1000, 1000)
}

func TestLoginSendsJSONWithoutAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a token")

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ann@example.com", req["email"])
		assert.Equal(t, "hunter2", req["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"message":      "Login successful",
			"access_token": "T",
			"token_type":   "bearer",
			"user":         map[string]any{"user_id": 7, "name": "Ann", "email": "ann@example.com"},
		})
	})

	resp, err := client.Login(context.Background(), "ann@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "T", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ann", resp.User.Name)
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"name": "Ann"}})
	})
	client.WithTokenSource(func() string { return "T" })

	_, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", gotAuth)
}

func TestRequiredAuthWithoutTokenShortCircuits(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.BuyPolicy(context.Background(), "HLT-01", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "no request may be issued without a token")
}

func TestErrorDetailPreferred(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
	})

	_, err := client.Login(context.Background(), "x@y.z", "nope")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid email or password")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestErrorWithoutDetailFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Products(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "GET /products failed")
}

func TestUnauthorizedResponseMatchesSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Token expired"})
	})
	client.WithTokenSource(func() string { return "stale" })

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUnparseableSuccessBodyYieldsZeroPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	resp, err := client.Chat(context.Background(), "hi", "")
	require.NoError(t, err, "parse failure on 2xx is not an error")
	require.NotNil(t, resp)
	assert.Empty(t, resp.Response)
}

func TestChatPolicyNumberNullWhenAbsent(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"response": "hello"})
	})

	_, err := client.Chat(context.Background(), "hi", "")
	require.NoError(t, err)
	v, present := body["policy_number"]
	assert.True(t, present, "policy_number must be sent explicitly")
	assert.Nil(t, v, "absent policy serializes as null")

	_, err = client.Chat(context.Background(), "hi", "POL123")
	require.NoError(t, err)
	assert.Equal(t, "POL123", body["policy_number"])
}

func TestChatFlagsParsed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response":        "Here are our plans",
			"policy_number":   "POL9",
			"requires_policy": true,
			"booking_intent":  true,
		})
	})

	resp, err := client.Chat(context.Background(), "show me plans", "")
	require.NoError(t, err)
	assert.Equal(t, "POL9", resp.PolicyNumber)
	assert.True(t, resp.RequiresPolicy)
	assert.True(t, resp.BookingIntent)
}

func TestPolicyNumberPathEscaped(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]any{"policy_number": "a/b"})
	})

	_, err := client.Policy(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/policy/a%2Fb", gotPath)
}

func TestBuyPolicySendsEmptyAddonArray(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"message": "purchased",
			"policy":  map[string]any{"policy_number": "POL1", "insurance_type": "health"},
		})
	})
	client.WithTokenSource(func() string { return "T" })

	resp, err := client.BuyPolicy(context.Background(), "HLT-01", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, body["addon_codes"], "nil addons serialize as [], not null")
	require.NotNil(t, resp.Policy)
	assert.Equal(t, "POL1", resp.Policy.PolicyNumber)
}

func TestUnreachableBackend(t *testing.T) {
	client := NewClient("http://127.0.0.1:1").WithRateLimit(1000, 1000)

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

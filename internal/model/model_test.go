// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAvatar(t *testing.T) {
	assert.Equal(t, "AB", RoleUser.Avatar("AB"))
	assert.Equal(t, "U", RoleUser.Avatar(""))
	assert.Equal(t, "AI", RoleBot.Avatar("AB"))
	assert.Equal(t, "!", RoleError.Avatar("AB"))
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleBot.DisplayName())
	assert.Equal(t, "Error", RoleError.DisplayName())
}

func TestNewMessage(t *testing.T) {
	m := NewUserMessage("what does my policy cover?")
	assert.Equal(t, RoleUser, m.Role)
	assert.Equal(t, "what does my policy cover?", m.Text)
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Timestamp.IsZero())

	m2 := NewBotMessage("reply")
	assert.NotEqual(t, m.ID, m2.ID)
}

func TestMessagePreview(t *testing.T) {
	m := NewBotMessage("a fairly long response about coverage")
	assert.Equal(t, "a fairly ...", m.Preview(12))
	assert.Equal(t, m.Text, m.Preview(100))
}

func TestTranscript(t *testing.T) {
	var tr Transcript
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Last())

	tr.Append(NewUserMessage("hi"))
	tr.Append(NewBotMessage("hello"))
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, RoleBot, tr.Last().Role)

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Messages())
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.True(t, Session{Token: "T"}.Authenticated())

	assert.Equal(t, "", Session{}.DisplayName())
	assert.Equal(t, "Ann", Session{User: &User{Name: "Ann"}}.DisplayName())
}

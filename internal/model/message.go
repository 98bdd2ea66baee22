// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the insurechat client:
// the session, catalog types and the transient chat transcript.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleBot   Role = "bot"
	RoleError Role = "error"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Assistant"
	case RoleError:
		return "Error"
	default:
		return string(r)
	}
}

// Avatar returns the badge text shown beside a message of this role.
// User messages carry the user's initials; the bot and error rows use
// fixed labels.
func (r Role) Avatar(initials string) string {
	switch r {
	case RoleUser:
		if initials == "" {
			return "U"
		}
		return initials
	case RoleBot:
		return "AI"
	case RoleError:
		return "!"
	default:
		return "?"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transcript row. The transcript is transient UI state:
// it is never persisted and a logout clears it.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, text string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, text)
}

// NewBotMessage creates an assistant message.
func NewBotMessage(text string) *Message {
	return NewMessage(RoleBot, text)
}

// NewErrorMessage creates an error message.
func NewErrorMessage(text string) *Message {
	return NewMessage(RoleError, text)
}

// Preview returns a truncated single-line preview of the message text.
func (m *Message) Preview(maxRunes int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxRunes {
		return m.Text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only message log for the chat view.
type Transcript struct {
	messages []*Message
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m *Message) {
	t.messages = append(t.messages, m)
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = nil
}

// Messages returns the transcript rows in order.
func (t *Transcript) Messages() []*Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or nil for an empty transcript.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// Legacy chat-history keys. Earlier client builds persisted the transcript
// under these names; the current client never writes them, but logout still
// scrubs them from every storage scope so a stale history cannot outlive the
// session that produced it.
var (
	legacyChatKeys = []string{
		"insure_chat_history",
		"insurechat_history",
	}

	legacyChatPrefixes = []string{
		"chat_history:",
		"insurechat:chat:",
	}
)

// ScrubChatHistory removes all legacy chat-history keys, exact names and
// prefix matches, from each given store. Best effort: a failing store does
// not stop the scrub of the others, and the first error is returned after
// all stores were visited.
func ScrubChatHistory(stores ...KeyValueStore) error {
	var firstErr error

	for _, kv := range stores {
		if kv == nil {
			continue
		}

		for _, key := range legacyChatKeys {
			if err := kv.Delete(key); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		keys, err := kv.Keys()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, key := range keys {
			if !matchesLegacyPrefix(key) {
				continue
			}
			if err := kv.Delete(key); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func matchesLegacyPrefix(key string) bool {
	for _, prefix := range legacyChatPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

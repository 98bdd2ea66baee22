// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the client session (auth token, policy number,
// user profile) across restarts. Storage is a small key-value abstraction
// with durable backends (files or SQLite) and an in-memory scoped backend
// for process-lifetime state and tests.
package session

import "sync"

// KeyValueStore is the storage contract the session store runs on. Durable
// backends are assumed synchronous and effectively atomic per key; no
// cross-key transactionality is provided.
type KeyValueStore interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores a value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists all stored keys.
	Keys() ([]string, error)
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemStore is an in-memory KeyValueStore. It backs the session-scoped storage
// (lost on exit, like a browser's session scope) and the unit tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

// Get returns the value for key and whether the key exists.
func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value under key.
func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes key.
func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists all stored keys.
func (m *MemStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

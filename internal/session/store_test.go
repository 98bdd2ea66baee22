// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/insurechat-tui/internal/model"
)

// backends returns one of each KeyValueStore implementation, fresh per test.
func backends(t *testing.T) map[string]KeyValueStore {
	t.Helper()

	fs, err := NewFileStoreWithDir(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, err)

	db, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]KeyValueStore{
		"mem":    NewMemStore(),
		"file":   fs,
		"sqlite": db,
	}
}

func TestKeyValueStoreRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("a", "1"))
			require.NoError(t, kv.Set("chat_history:7", "legacy"))
			require.NoError(t, kv.Set("a", "2")) // overwrite

			v, ok, err := kv.Get("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2", v)

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a", "chat_history:7"}, keys)

			require.NoError(t, kv.Delete("a"))
			require.NoError(t, kv.Delete("a")) // absent key is fine
			_, ok, err = kv.Get("a")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSaveMirrorsTruthiness(t *testing.T) {
	kv := NewMemStore()
	store := NewStore(kv)

	sess := model.Session{
		Token:        "T",
		PolicyNumber: "POL123",
		User:         &model.User{Name: "Ann Bell", Email: "ann@example.com"},
	}
	require.NoError(t, store.Save(sess))

	for _, key := range []string{KeyToken, KeyPolicy, KeyUser} {
		_, ok, err := kv.Get(key)
		require.NoError(t, err)
		assert.True(t, ok, "key %s should be present", key)
	}

	// Dropping a field removes its key instead of storing empty.
	sess.PolicyNumber = ""
	sess.User = nil
	require.NoError(t, store.Save(sess))

	_, ok, _ := kv.Get(KeyPolicy)
	assert.False(t, ok, "policy key should be removed")
	_, ok, _ = kv.Get(KeyUser)
	assert.False(t, ok, "user key should be removed")
	v, ok, _ := kv.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "T", v)
}

func TestLoadRoundTrip(t *testing.T) {
	kv := NewMemStore()
	store := NewStore(kv)

	want := model.Session{
		Token:        "T",
		PolicyNumber: "POL123",
		User:         &model.User{UserID: 7, Name: "Ann", Email: "a@b.com"},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadToleratesMalformedUser(t *testing.T) {
	kv := NewMemStore()
	require.NoError(t, kv.Set(KeyToken, "T"))
	require.NoError(t, kv.Set(KeyUser, "{not json"))

	sess, err := NewStore(kv).Load()
	require.NoError(t, err)
	assert.Equal(t, "T", sess.Token)
	assert.Nil(t, sess.User, "malformed user payload should load as absent user")
}

func TestScrubChatHistory(t *testing.T) {
	durable := NewMemStore()
	scoped := NewMemStore()

	require.NoError(t, durable.Set(KeyToken, "T"))
	require.NoError(t, durable.Set("insure_chat_history", "old"))
	require.NoError(t, durable.Set("chat_history:42", "old"))
	require.NoError(t, durable.Set("insurechat:chat:9", "old"))
	require.NoError(t, scoped.Set("insurechat_history", "old"))
	require.NoError(t, scoped.Set("chat_history:1", "old"))
	require.NoError(t, scoped.Set("unrelated", "keep"))

	require.NoError(t, ScrubChatHistory(durable, scoped))

	keys, _ := durable.Keys()
	assert.ElementsMatch(t, []string{KeyToken}, keys, "only non-chat keys survive")

	keys, _ = scoped.Keys()
	assert.ElementsMatch(t, []string{"unrelated"}, keys)
}

func TestFileStoreEscapesKeys(t *testing.T) {
	fs, err := NewFileStoreWithDir(filepath.Join(t.TempDir(), "s"))
	require.NoError(t, err)

	require.NoError(t, fs.Set("insurechat:chat:1", "x"))
	v, ok, err := fs.Get("insurechat:chat:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	keys, err := fs.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"insurechat:chat:1"}, keys)
}

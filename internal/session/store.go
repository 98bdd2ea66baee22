// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"

	"github.com/morganforge/insurechat-tui/internal/model"
)

// Durable key names for the three session fields.
const (
	KeyToken  = "insure_auth_token"
	KeyPolicy = "insure_policy_number"
	KeyUser   = "insure_user"
)

// Store reads and writes the session over a KeyValueStore. Save keeps the
// invariant that key presence mirrors field truthiness: an empty field's key
// is removed, never stored empty. There is no cross-key transaction; each key
// write stands alone.
type Store struct {
	kv KeyValueStore
}

// NewStore creates a session store over the given backend.
func NewStore(kv KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Load reads the session from storage. A missing key yields a zero field.
// A malformed user payload yields an absent user rather than an error: a
// corrupt profile should degrade to logged-out display, not block startup.
func (s *Store) Load() (model.Session, error) {
	var sess model.Session

	token, ok, err := s.kv.Get(KeyToken)
	if err != nil {
		return sess, err
	}
	if ok {
		sess.Token = token
	}

	policy, ok, err := s.kv.Get(KeyPolicy)
	if err != nil {
		return sess, err
	}
	if ok {
		sess.PolicyNumber = policy
	}

	raw, ok, err := s.kv.Get(KeyUser)
	if err != nil {
		return sess, err
	}
	if ok {
		var user model.User
		if jsonErr := json.Unmarshal([]byte(raw), &user); jsonErr == nil {
			sess.User = &user
		}
	}

	return sess, nil
}

// Save writes the session to storage, setting or deleting each of the three
// keys independently based on the truthiness of its field.
func (s *Store) Save(sess model.Session) error {
	if err := s.setOrDelete(KeyToken, sess.Token); err != nil {
		return err
	}
	if err := s.setOrDelete(KeyPolicy, sess.PolicyNumber); err != nil {
		return err
	}

	if sess.User == nil {
		return s.kv.Delete(KeyUser)
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyUser, string(raw))
}

func (s *Store) setOrDelete(key, value string) error {
	if value == "" {
		return s.kv.Delete(key)
	}
	return s.kv.Set(key, value)
}

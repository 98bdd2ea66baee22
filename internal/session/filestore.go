// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/morganforge/insurechat-tui/internal/util"
)

// FileStore is a KeyValueStore holding one file per key under a base
// directory, default ~/.insurechat/session/. Writes are atomic and files are
// created 0600 because one of the keys is the bearer token.
type FileStore struct {
	BaseDir string
}

// NewFileStore creates a file store rooted in the user's config directory.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreWithDir(filepath.Join(homeDir, ".insurechat", "session"))
}

// NewFileStoreWithDir creates a file store rooted at baseDir.
func NewFileStoreWithDir(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// Get returns the value for key and whether the key exists.
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set stores a value under key.
func (s *FileStore) Set(key, value string) error {
	return util.AtomicWriteFile(s.path(key), []byte(value), 0o600)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Keys lists all stored keys.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, err := url.QueryUnescape(entry.Name())
		if err != nil {
			continue // not one of ours
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// path maps a key to its file. Keys may contain characters that are not
// filename-safe (the legacy chat keys use ":"), so the key is escaped.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.BaseDir, url.QueryEscape(key))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the login session between runs.
//
// The durable subset of the session (bearer token, profile, linked policy
// number) lives in a KeyValueStore. Two backends implement it: FileStore
// keeps one file per key under the config directory, SQLiteStore keeps a
// single database. Store maps between model.Session and the raw keys so a
// key exists exactly when its field is non-empty.
//
// ScrubChatHistory removes conversation keys written by earlier releases;
// transcripts are session-scoped and never persisted anymore.
package session

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes for CLI failures.
package cli

import (
	"errors"

	"github.com/morganforge/insurechat-tui/internal/api"
)

// Exit codes. Scripts can branch on these without parsing stderr.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitUsage        = 2
	ExitUnavailable  = 3
	ExitUnauthorized = 4
)

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, api.ErrUnauthorized):
		return ExitUnauthorized
	case errors.Is(err, api.ErrUnavailable):
		return ExitUnavailable
	default:
		return ExitError
	}
}

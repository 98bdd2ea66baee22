// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strings"
	"testing"
	"time"
)

func TestCurrencyZeroFractionDigits(t *testing.T) {
	f := NewFormatter(DefaultLocale, DefaultCurrency)

	got := f.Currency(12500.75)
	if strings.Contains(got, ".") {
		t.Errorf("Currency(12500.75) = %q, want no fraction digits", got)
	}
	if !strings.Contains(got, "12,500") {
		t.Errorf("Currency(12500.75) = %q, want grouped integer part", got)
	}
	if !strings.Contains(got, "₹") {
		t.Errorf("Currency(12500.75) = %q, want rupee symbol", got)
	}
}

func TestCurrencyBadLocaleFallsBack(t *testing.T) {
	f := NewFormatter("not a locale", "XXX?")
	got := f.Currency(100)
	if got == "" {
		t.Error("Currency with bad locale returned empty string")
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 9, 14, 5, 0, 0, time.UTC)
	if got := Timestamp(ts); got != "2:05 PM" {
		t.Errorf("Timestamp = %q, want 2:05 PM", got)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ann Bell", "AB"},
		{"ann", "A"},
		{"Ann Bell Carter", "AB"},
		{"", "U"},
		{"   ", "U"},
		{"željko ivanek", "ŽI"},
	}

	for _, tc := range tests {
		if got := Initials(tc.name); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

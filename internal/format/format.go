// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format provides display formatting for currency amounts, message
// timestamps and user initials. All functions are pure.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults match the backend's seed catalog, which prices in rupees.
const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

// Formatter renders currency amounts for a fixed locale and currency unit.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter creates a Formatter for the given BCP 47 locale and ISO 4217
// currency code. Unknown values fall back to the defaults rather than failing:
// a bad locale in a config file should degrade formatting, not the client.
func NewFormatter(locale, code string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.INR
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Currency formats an amount with the locale's currency symbol and zero
// fraction digits, e.g. 12500 -> "₹12,500" for en-IN/INR.
func (f *Formatter) Currency(amount float64) string {
	return f.printer.Sprintf("%v%v",
		currency.Symbol(f.unit),
		number.Decimal(amount,
			number.MinFractionDigits(0),
			number.MaxFractionDigits(0)))
}

// Timestamp returns the short time label shown next to a chat message.
func Timestamp(t time.Time) string {
	return t.Format("3:04 PM")
}

// Initials derives an at-most-two-letter badge from a display name.
// "Ann Bell" -> "AB", "ann" -> "A", "" -> "U".
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "U"
	}

	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

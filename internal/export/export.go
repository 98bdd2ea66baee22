// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts and the product catalog to shareable
// files. Untrusted text (assistant replies, product descriptions) is always
// escaped for the target format, never interpreted.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/morganforge/insurechat-tui/internal/format"
	"github.com/morganforge/insurechat-tui/internal/model"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Document is the material an exporter renders: the transcript, optionally
// the catalog, and the session's display context.
type Document struct {
	Title      string
	UserName   string
	Messages   []*model.Message
	Products   []model.Product
	ExportedAt time.Time
}

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts a document to the target format.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g. ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory.
	OutputDir string

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool

	// IncludeCatalog appends the product catalog after the transcript.
	IncludeCatalog bool

	// Theme for HTML export ("light" or "dark").
	Theme string

	// Formatter renders premiums and coverage amounts. Nil means the
	// default locale.
	Formatter *format.Formatter
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
		IncludeCatalog:    true,
		Theme:             "dark",
	}
}

func (o *Options) formatter() *format.Formatter {
	if o.Formatter != nil {
		return o.Formatter
	}
	return format.NewFormatter(format.DefaultLocale, format.DefaultCurrency)
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a document to a file using the given exporter and
// returns the output path.
func ExportToFile(doc *Document, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("insurechat_%s%s", timestamp, exporter.FileExtension())

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

var markdownSpecials = regexp.MustCompile("([\\\\`*_{}\\[\\]()#+!|<>-])")

// escapeMarkdown neutralizes markdown syntax in untrusted text.
func escapeMarkdown(s string) string {
	return markdownSpecials.ReplaceAllString(s, "\\$1")
}
